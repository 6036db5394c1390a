package model

// Role identifies an employee's position in the dispatch center
type Role string

const (
	RoleDispatcher Role = "dispatcher"
	RoleSupervisor Role = "supervisor"
	RoleManager    Role = "manager"
)

// ShiftPattern identifies the weekly shift shape an employee works
type ShiftPattern string

const (
	// PatternFourTen is four consecutive 10-hour shifts per work cycle
	PatternFourTen ShiftPattern = "4x10"

	// PatternThreeTwelvePlusFour is three consecutive 12-hour shifts plus one 4-hour shift
	PatternThreeTwelvePlusFour ShiftPattern = "3x12+4"
)

// AllowedDurations returns the shift durations (in hours) legal for this pattern
func (p ShiftPattern) AllowedDurations() []float64 {
	switch p {
	case PatternFourTen:
		return []float64{10}
	case PatternThreeTwelvePlusFour:
		return []float64{12, 4}
	default:
		return nil
	}
}

// AllowsDuration reports whether a shift of the given length fits this pattern
func (p ShiftPattern) AllowsDuration(hours float64) bool {
	for _, d := range p.AllowedDurations() {
		if d == hours {
			return true
		}
	}
	return false
}

// MaxConsecutiveDays returns the maximum run of working days for this pattern.
// Both supported patterns top out at four days.
func (p ShiftPattern) MaxConsecutiveDays() int {
	return 4
}

// ShiftCategory identifies the time-of-day band a shift falls into
type ShiftCategory string

const (
	CategoryEarly     ShiftCategory = "early"
	CategoryDay       ShiftCategory = "day"
	CategorySwing     ShiftCategory = "swing"
	CategoryGraveyard ShiftCategory = "graveyard"
)

// AssignmentStatus tracks a shift assignment through its lifecycle
type AssignmentStatus string

const (
	StatusScheduled AssignmentStatus = "scheduled"
	StatusCompleted AssignmentStatus = "completed"
	StatusCancelled AssignmentStatus = "cancelled"
)

// TimeOffStatus tracks a time-off request through review
type TimeOffStatus string

const (
	TimeOffPending  TimeOffStatus = "pending"
	TimeOffApproved TimeOffStatus = "approved"
	TimeOffRejected TimeOffStatus = "rejected"
)

// Employee represents a dispatch center employee on the roster
type Employee struct {
	ID        string
	FirstName string
	LastName  string
	Role      Role

	// ShiftPattern determines the only legal shift-duration sequence
	// this employee may be assigned
	ShiftPattern ShiftPattern

	// WeeklyHoursCap is the maximum hours per week (default 40)
	WeeklyHoursCap float64

	// MaxOvertimeHours raises the weekly ceiling when pre-approved (default 0)
	MaxOvertimeHours float64

	PreferredShiftCategory ShiftCategory
}

// IsSupervisor reports whether this employee can provide supervisor coverage
func (e Employee) IsSupervisor() bool {
	return e.Role == RoleSupervisor || e.Role == RoleManager
}

// ShiftOption is a reusable shift template. Immutable reference data.
type ShiftOption struct {
	ID       string
	Category ShiftCategory

	// StartTime and EndTime are HH:mm 24-hour strings. EndTime may be
	// numerically less than StartTime when the shift crosses midnight.
	StartTime string
	EndTime   string

	// DurationHours is one of 4, 10, or 12
	DurationHours float64
}

// ShiftAssignment is a single employee placed into a shift on a date
type ShiftAssignment struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employeeId"`
	ShiftOptionID string `json:"shiftOptionId"`

	// Date is a YYYY-MM-DD string
	Date string `json:"date"`

	// StartTime and EndTime are HH:mm 24-hour strings
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	IsSupervisor bool             `json:"isSupervisor"`
	Status       AssignmentStatus `json:"status"`
}

// TimeOffRequest is an employee's request to be off work over a date range
type TimeOffRequest struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`

	// StartDate and EndDate are inclusive YYYY-MM-DD strings
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	Status TimeOffStatus `json:"status"`
}

// StaffingRequirement is a time block with minimum headcount floors.
// Overlapping blocks each impose their own floor independently.
type StaffingRequirement struct {
	ID string `json:"id"`

	// StartTime and EndTime are HH:mm 24-hour strings
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	MinEmployees   int `json:"minEmployees"`
	MinSupervisors int `json:"minSupervisors"`

	// DayOfWeek restricts the block to one weekday ("Sunday".."Saturday").
	// Empty means the block applies every day.
	DayOfWeek string `json:"dayOfWeek,omitempty"`

	// HolidayOnly restricts the block to configured holiday dates
	HolidayOnly bool `json:"holidayOnly,omitempty"`
}

// RequiresSupervisor reports whether this block needs supervisor coverage
func (r StaffingRequirement) RequiresSupervisor() bool {
	return r.MinSupervisors >= 1
}

// SchedulePeriod is a date range a schedule is generated for
type SchedulePeriod struct {
	ID        string
	StartDate string
	EndDate   string
	Status    string
}

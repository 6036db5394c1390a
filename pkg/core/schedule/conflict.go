package schedule

import "github.com/dispatch-rota/scheduler/pkg/core/model"

// ConflictType classifies how a shift and a time-off range intersect
type ConflictType string

const (
	// FullOverlap means the shift is wholly contained in the time off
	FullOverlap ConflictType = "FULL_OVERLAP"

	// PartialOverlap means one boundary of the shift crosses the time off
	PartialOverlap ConflictType = "PARTIAL_OVERLAP"
)

// Conflict pairs a shift assignment with a time-off request it collides with
type Conflict struct {
	Type         ConflictType
	ShiftID      string
	TimeOffID    string
	EmployeeID   string
	ShiftDate    string
	TimeOffStart string
	TimeOffEnd   string
}

// shiftDateSpan returns the first and last calendar days a shift touches.
// A shift that crosses midnight spills into the following day.
func shiftDateSpan(shift model.ShiftAssignment) (string, string, error) {
	start, err := parseClock(shift.StartTime)
	if err != nil {
		return "", "", err
	}
	end, err := parseClock(shift.EndTime)
	if err != nil {
		return "", "", err
	}
	if end > start {
		return shift.Date, shift.Date, nil
	}
	d, err := ParseDate(shift.Date)
	if err != nil {
		return "", "", err
	}
	return shift.Date, FormatDate(d.AddDate(0, 0, 1)), nil
}

// classifyOverlap compares a shift's day span against an inclusive
// time-off date range and reports whether and how they intersect
func classifyOverlap(shift model.ShiftAssignment, timeOff model.TimeOffRequest) (ConflictType, bool, error) {
	firstDay, lastDay, err := shiftDateSpan(shift)
	if err != nil {
		return "", false, err
	}
	if _, err := ParseDate(timeOff.StartDate); err != nil {
		return "", false, err
	}
	if _, err := ParseDate(timeOff.EndDate); err != nil {
		return "", false, err
	}

	firstIn := timeOff.StartDate <= firstDay && firstDay <= timeOff.EndDate
	lastIn := timeOff.StartDate <= lastDay && lastDay <= timeOff.EndDate

	switch {
	case firstIn && lastIn:
		return FullOverlap, true, nil
	case firstIn || lastIn:
		return PartialOverlap, true, nil
	default:
		return "", false, nil
	}
}

// CheckTimeOffConflicts finds approved time-off requests for the shift's
// employee that collide with the shift. Requests for other employees and
// non-approved requests are ignored. Returns conflicts in request order.
func CheckTimeOffConflicts(shift model.ShiftAssignment, requests []model.TimeOffRequest) ([]Conflict, error) {
	conflicts := []Conflict{}
	for _, req := range requests {
		if req.EmployeeID != shift.EmployeeID || req.Status != model.TimeOffApproved {
			continue
		}
		kind, overlapping, err := classifyOverlap(shift, req)
		if err != nil {
			return nil, err
		}
		if !overlapping {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Type:         kind,
			ShiftID:      shift.ID,
			TimeOffID:    req.ID,
			EmployeeID:   shift.EmployeeID,
			ShiftDate:    shift.Date,
			TimeOffStart: req.StartDate,
			TimeOffEnd:   req.EndDate,
		})
	}
	return conflicts, nil
}

// CheckShiftConflicts is the symmetric operation: given a time-off request,
// find the employee's shifts that collide with it.
func CheckShiftConflicts(request model.TimeOffRequest, shifts []model.ShiftAssignment) ([]Conflict, error) {
	conflicts := []Conflict{}
	for _, shift := range shifts {
		if shift.EmployeeID != request.EmployeeID {
			continue
		}
		kind, overlapping, err := classifyOverlap(shift, request)
		if err != nil {
			return nil, err
		}
		if !overlapping {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Type:         kind,
			ShiftID:      shift.ID,
			TimeOffID:    request.ID,
			EmployeeID:   request.EmployeeID,
			ShiftDate:    shift.Date,
			TimeOffStart: request.StartDate,
			TimeOffEnd:   request.EndDate,
		})
	}
	return conflicts, nil
}

// CheckTimeOffRequestConflicts reports whether any other approved request
// for the same employee overlaps this request's date range. A request never
// conflicts with itself.
func CheckTimeOffRequestConflicts(request model.TimeOffRequest, existing []model.TimeOffRequest) (bool, error) {
	if _, err := ParseDate(request.StartDate); err != nil {
		return false, err
	}
	if _, err := ParseDate(request.EndDate); err != nil {
		return false, err
	}
	for _, other := range existing {
		if other.ID == request.ID || other.EmployeeID != request.EmployeeID {
			continue
		}
		if other.Status != model.TimeOffApproved {
			continue
		}
		if _, err := ParseDate(other.StartDate); err != nil {
			return false, err
		}
		if _, err := ParseDate(other.EndDate); err != nil {
			return false, err
		}
		// Inclusive date ranges intersect when neither ends before the
		// other begins
		if request.StartDate <= other.EndDate && other.StartDate <= request.EndDate {
			return true, nil
		}
	}
	return false, nil
}

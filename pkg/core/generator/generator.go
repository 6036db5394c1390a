package generator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dispatch-rota/scheduler/pkg/core/model"
	"github.com/dispatch-rota/scheduler/pkg/core/schedule"
)

var (
	// ErrInvalidPeriod indicates the schedule period bounds are missing or reversed
	ErrInvalidPeriod = errors.New("invalid schedule period")

	// ErrMissingData indicates the roster or staffing requirements could not be loaded
	ErrMissingData = errors.New("failed to fetch required data")
)

// Store defines the database operations needed for a generation run
type Store interface {
	GetSchedulePeriod(ctx context.Context, periodID string) (*model.SchedulePeriod, error)
	GetRoster(ctx context.Context, periodID string) ([]model.Employee, error)
	GetShiftOptions(ctx context.Context) ([]model.ShiftOption, error)
	GetStaffingRequirements(ctx context.Context) ([]model.StaffingRequirement, error)
	GetApprovedTimeOff(ctx context.Context, startDate, endDate string) ([]model.TimeOffRequest, error)
	InsertAssignments(ctx context.Context, assignments []model.ShiftAssignment) error
}

// Params configures a generation run
type Params struct {
	// StartDate and EndDate override the period bounds when set
	StartDate string
	EndDate   string

	// ConsiderPreferences orders eligible employees by ascending accumulated
	// weekly hours and prefers their preferred shift category
	ConsiderPreferences bool

	// AllowOvertime lets an employee's approved overtime raise their weekly
	// ceiling; when false every employee is capped at their base hours
	AllowOvertime bool

	// DryRun skips persistence
	DryRun bool

	// Holidays marks dates (YYYY-MM-DD) on which holiday-only staffing
	// blocks apply
	Holidays map[string]bool
}

// Result reports the outcome of a generation run. Unfilled requirements are
// reported, not fatal: a partially staffed schedule is still returned.
type Result struct {
	Success              bool
	ShiftsGenerated      int
	UnfilledRequirements int
	Errors               []string
	Assignments          []model.ShiftAssignment
}

// Generate produces shift assignments for a schedule period. Setup failures
// (invalid period, missing roster or requirements, store errors) return an
// error; once inputs are confirmed valid the run always returns a Result,
// except when persisting the generated assignments fails.
func Generate(ctx context.Context, store Store, logger *zap.Logger, periodID string, params Params) (*Result, error) {
	// LOADING_INPUTS
	period, err := store.GetSchedulePeriod(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule period: %w", err)
	}
	if period == nil {
		return nil, ErrInvalidPeriod
	}

	startDate := period.StartDate
	if params.StartDate != "" {
		startDate = params.StartDate
	}
	endDate := period.EndDate
	if params.EndDate != "" {
		endDate = params.EndDate
	}

	start, err := schedule.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}
	end, err := schedule.ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}
	if !start.Before(end) {
		return nil, ErrInvalidPeriod
	}

	roster, err := store.GetRoster(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingData, err)
	}
	requirements, err := store.GetStaffingRequirements(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingData, err)
	}
	if len(roster) == 0 || len(requirements) == 0 {
		return nil, ErrMissingData
	}

	options, err := store.GetShiftOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingData, err)
	}
	timeOff, err := store.GetApprovedTimeOff(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingData, err)
	}

	logger.Info("Generating schedule",
		zap.String("period_id", periodID),
		zap.String("start_date", startDate),
		zap.String("end_date", endDate),
		zap.Int("roster_size", len(roster)),
		zap.Int("requirement_blocks", len(requirements)),
		zap.Int("approved_time_off", len(timeOff)))

	run := &run{
		logger:       logger,
		params:       params,
		periodID:     periodID,
		roster:       roster,
		options:      options,
		requirements: requirements,
		timeOff:      timeOff,
		tracking:     schedule.InitializeTracking(roster),
	}

	// ASSIGNING
	if err := run.assign(start, end); err != nil {
		return nil, err
	}
	if !params.DryRun && len(run.generated) > 0 {
		if err := store.InsertAssignments(ctx, run.generated); err != nil {
			return nil, fmt.Errorf("failed to insert assignments: %w", err)
		}
	}

	// VALIDATING
	unfilled := run.countUnfilled(start, end)

	logger.Info("Schedule generation complete",
		zap.Int("shifts_generated", len(run.generated)),
		zap.Int("unfilled_requirements", unfilled))

	// DONE
	return &Result{
		Success:              true,
		ShiftsGenerated:      len(run.generated),
		UnfilledRequirements: unfilled,
		Errors:               []string{},
		Assignments:          run.generated,
	}, nil
}

// run holds the mutable state of a single generation pass. Assignment is
// sequential per date and block: tracker updates are read-then-write, so
// concurrent placement is not supported.
type run struct {
	logger       *zap.Logger
	params       Params
	periodID     string
	roster       []model.Employee
	options      []model.ShiftOption
	requirements []model.StaffingRequirement
	timeOff      []model.TimeOffRequest
	tracking     schedule.Tracking
	generated    []model.ShiftAssignment
}

// requirementAppliesOn filters blocks by weekday restriction and holiday flag
func (r *run) requirementAppliesOn(req model.StaffingRequirement, date time.Time) bool {
	return schedule.RequirementAppliesOn(req, date, r.params.Holidays)
}

// onApprovedTimeOff reports whether the employee has approved time off
// covering the given date
func (r *run) onApprovedTimeOff(employeeID, date string) bool {
	for _, req := range r.timeOff {
		if req.EmployeeID != employeeID || req.Status != model.TimeOffApproved {
			continue
		}
		if req.StartDate <= date && date <= req.EndDate {
			return true
		}
	}
	return false
}

// assignedOn reports whether the employee already holds a shift on the date
func (r *run) assignedOn(employeeID, date string) bool {
	for _, a := range r.generated {
		if a.EmployeeID == employeeID && a.Date == date {
			return true
		}
	}
	return false
}

// effectiveEmployee zeroes out approved overtime when the run disallows it
func (r *run) effectiveEmployee(e model.Employee) model.Employee {
	if !r.params.AllowOvertime {
		e.MaxOvertimeHours = 0
	}
	return e
}

// candidateOption picks the shift template this employee would work for the
// block: it must overlap the block's time range, fit the employee's pattern,
// and pass the eligibility gate. With preferences on, templates matching the
// employee's preferred category are tried first.
func (r *run) candidateOption(employee model.Employee, date string, req model.StaffingRequirement) *model.ShiftOption {
	ordered := make([]model.ShiftOption, len(r.options))
	copy(ordered, r.options)
	if r.params.ConsiderPreferences {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Category == employee.PreferredShiftCategory &&
				ordered[j].Category != employee.PreferredShiftCategory
		})
	}

	for i := range ordered {
		opt := ordered[i]
		overlapping, err := schedule.TimeRangesOverlap(opt.StartTime, opt.EndTime, req.StartTime, req.EndTime)
		if err != nil || !overlapping {
			continue
		}
		if !schedule.CanAssignShift(r.effectiveEmployee(employee), date, opt, r.tracking.WeeklyHours, r.tracking.ShiftPatterns) {
			continue
		}
		return &opt
	}
	return nil
}

// eligibleEmployees returns employees who could take a seat in the block,
// ordered supervisors-first while the block still lacks supervisor coverage,
// then by ascending accumulated weekly hours when preferences are on.
func (r *run) eligibleEmployees(date string, week string, req model.StaffingRequirement, needSupervisor bool) []model.Employee {
	var eligible []model.Employee
	for _, e := range r.roster {
		if r.onApprovedTimeOff(e.ID, date) || r.assignedOn(e.ID, date) {
			continue
		}
		if r.candidateOption(e, date, req) == nil {
			continue
		}
		eligible = append(eligible, e)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if needSupervisor && eligible[i].IsSupervisor() != eligible[j].IsSupervisor() {
			return eligible[i].IsSupervisor()
		}
		if r.params.ConsiderPreferences {
			return r.tracking.WeeklyHours.HoursFor(eligible[i].ID, week) <
				r.tracking.WeeklyHours.HoursFor(eligible[j].ID, week)
		}
		return false
	})

	return eligible
}

// assign walks each date in the period and fills every applicable
// requirement block seat by seat
func (r *run) assign(start, end time.Time) error {
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dateStr := schedule.FormatDate(d)
		week, err := schedule.WeekStart(dateStr)
		if err != nil {
			return err
		}

		for _, req := range r.requirements {
			if !r.requirementAppliesOn(req, d) {
				continue
			}
			if err := r.fillBlock(dateStr, week, req); err != nil {
				return err
			}
		}
	}
	return nil
}

// fillBlock places employees into one requirement block on one date until
// the block meets its floors or no eligible employee remains
func (r *run) fillBlock(date, week string, req model.StaffingRequirement) error {
	for {
		headcount, supervisors, err := r.blockCoverage(date, req)
		if err != nil {
			return err
		}
		needSupervisor := supervisors < req.MinSupervisors
		if headcount >= req.MinEmployees && !needSupervisor {
			return nil
		}

		// Once the headcount floor is met, only a supervisor can still
		// improve the block
		supervisorOnly := needSupervisor && headcount >= req.MinEmployees

		placed := false
		for _, employee := range r.eligibleEmployees(date, week, req, needSupervisor) {
			if supervisorOnly && !employee.IsSupervisor() {
				continue
			}
			opt := r.candidateOption(employee, date, req)
			if opt == nil {
				continue
			}
			if err := r.place(employee, date, *opt); err != nil {
				return err
			}
			placed = true
			break
		}

		if !placed {
			r.logger.Debug("No eligible employee for block",
				zap.String("date", date),
				zap.String("block", req.StartTime+"-"+req.EndTime))
			return nil
		}
	}
}

// blockCoverage counts the run's assignments on the date that overlap the block
func (r *run) blockCoverage(date string, req model.StaffingRequirement) (int, int, error) {
	var dayAssignments []model.ShiftAssignment
	for _, a := range r.generated {
		if a.Date == date {
			dayAssignments = append(dayAssignments, a)
		}
	}
	inBlock, err := schedule.AssignmentsInBlock(dayAssignments, req)
	if err != nil {
		return 0, 0, err
	}
	supervisors := 0
	for _, a := range inBlock {
		if a.IsSupervisor {
			supervisors++
		}
	}
	return len(inBlock), supervisors, nil
}

// place creates the assignment and advances both trackers. Persistence
// happens in one batch after the assigning phase.
func (r *run) place(employee model.Employee, date string, opt model.ShiftOption) error {
	assignment := model.ShiftAssignment{
		ID:            uuid.NewString(),
		EmployeeID:    employee.ID,
		ShiftOptionID: opt.ID,
		Date:          date,
		StartTime:     opt.StartTime,
		EndTime:       opt.EndTime,
		IsSupervisor:  employee.IsSupervisor(),
		Status:        model.StatusScheduled,
	}

	weekly, err := schedule.UpdateWeeklyHours(r.tracking.WeeklyHours, employee.ID, date, opt.DurationHours)
	if err != nil {
		return err
	}
	patterns, err := schedule.UpdateShiftPattern(r.tracking.ShiftPatterns, employee.ID, date)
	if err != nil {
		return err
	}
	r.tracking.WeeklyHours = weekly
	r.tracking.ShiftPatterns = patterns
	r.generated = append(r.generated, assignment)

	r.logger.Debug("Placed shift",
		zap.String("employee_id", employee.ID),
		zap.String("date", date),
		zap.String("start", opt.StartTime),
		zap.String("end", opt.EndTime),
		zap.Bool("supervisor", assignment.IsSupervisor))

	return nil
}

// countUnfilled runs the staffing validator per date and counts requirement
// blocks that remain below their floors
func (r *run) countUnfilled(start, end time.Time) int {
	unfilled := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dateStr := schedule.FormatDate(d)

		var dayAssignments []model.ShiftAssignment
		for _, a := range r.generated {
			if a.Date == dateStr {
				dayAssignments = append(dayAssignments, a)
			}
		}

		for _, req := range r.requirements {
			if !r.requirementAppliesOn(req, d) {
				continue
			}
			result := schedule.ValidateSchedule(dayAssignments, []model.StaffingRequirement{req})
			if !result.Valid {
				unfilled++
				for _, msg := range result.Errors {
					r.logger.Warn("Unfilled requirement",
						zap.String("date", dateStr),
						zap.String("detail", msg))
				}
			}
		}
	}
	return unfilled
}

package schedule

import "github.com/dispatch-rota/scheduler/pkg/core/model"

// CanAssignShift decides whether an employee may be placed into a candidate
// shift on a date, given the run's current trackers. Checks short-circuit
// in order: weekly hour ceiling, pattern-duration fit, consecutive-day cap.
// The function performs no mutation; after a successful placement the
// caller applies UpdateWeeklyHours and UpdateShiftPattern.
func CanAssignShift(
	employee model.Employee,
	date string,
	option model.ShiftOption,
	weeklyHours WeeklyHoursTracking,
	shiftPatterns ShiftPatternTracking,
) bool {
	week, err := WeekStart(date)
	if err != nil {
		return false
	}

	ceiling := employee.WeeklyHoursCap
	if ceiling == 0 {
		ceiling = DefaultWeeklyHoursCap
	}
	if employee.MaxOvertimeHours > 0 {
		ceiling += employee.MaxOvertimeHours
	}
	if weeklyHours.HoursFor(employee.ID, week)+option.DurationHours > ceiling {
		return false
	}

	if !employee.ShiftPattern.AllowsDuration(option.DurationHours) {
		return false
	}

	// Four is the maximum run for both supported patterns, gap or no gap
	if state, ok := shiftPatterns[employee.ID]; ok {
		if state.ConsecutiveDays >= employee.ShiftPattern.MaxConsecutiveDays() {
			return false
		}
	}

	return true
}

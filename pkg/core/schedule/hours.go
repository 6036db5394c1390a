package schedule

import (
	"fmt"

	"github.com/dispatch-rota/scheduler/pkg/core/model"
)

// DefaultWeeklyHoursCap is the standard weekly hour ceiling
const DefaultWeeklyHoursCap = 40

// WeeklyHoursTracking maps employee ID to accumulated hours keyed by the
// ISO date of the week's Sunday. Generator-scoped working state, rebuilt
// fresh per run.
type WeeklyHoursTracking map[string]map[string]float64

// HoursFor returns the accumulated hours for an employee in the week
// containing the given week-start date
func (t WeeklyHoursTracking) HoursFor(employeeID, weekStartDate string) float64 {
	weeks, ok := t[employeeID]
	if !ok {
		return 0
	}
	return weeks[weekStartDate]
}

// CalculateWeeklyHours sums the duration of every assignment in the set,
// midnight-aware. It reports a single total for the given window; callers
// needing per-week buckets apply UpdateWeeklyHours per shift instead.
func CalculateWeeklyHours(assignments []model.ShiftAssignment) (float64, error) {
	var total float64
	for _, a := range assignments {
		hours, err := ShiftDurationHours(a.StartTime, a.EndTime)
		if err != nil {
			return 0, err
		}
		total += hours
	}
	return total, nil
}

// UpdateWeeklyHours returns a new tracking map with the given hours added
// to the employee's bucket for the week containing date. The input map is
// not mutated.
func UpdateWeeklyHours(tracking WeeklyHoursTracking, employeeID, date string, hours float64) (WeeklyHoursTracking, error) {
	week, err := WeekStart(date)
	if err != nil {
		return nil, err
	}

	updated := make(WeeklyHoursTracking, len(tracking))
	for id, weeks := range tracking {
		copied := make(map[string]float64, len(weeks))
		for w, h := range weeks {
			copied[w] = h
		}
		updated[id] = copied
	}

	if updated[employeeID] == nil {
		updated[employeeID] = make(map[string]float64)
	}
	updated[employeeID][week] += hours

	return updated, nil
}

// ValidateWeeklyHours checks the summed hours of the set against the
// 40-hour cap. Approved overtime waives the check entirely rather than
// raising the ceiling by a fixed amount. The reported total is the actual
// computed sum, never a clamped value.
func ValidateWeeklyHours(assignments []model.ShiftAssignment, overtimeApproved bool) ValidationResult {
	total, err := CalculateWeeklyHours(assignments)
	if err != nil {
		return resultFromErrors([]string{err.Error()})
	}

	if !overtimeApproved && total > DefaultWeeklyHoursCap {
		return resultFromErrors([]string{
			fmt.Sprintf("Weekly hours (%g) exceed maximum allowed (%d)", total, DefaultWeeklyHoursCap),
		})
	}

	return validResult()
}

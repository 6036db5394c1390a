package schedule

import "github.com/dispatch-rota/scheduler/pkg/core/model"

// PatternState tracks one employee's running shift-pattern position
type PatternState struct {
	CurrentPattern  model.ShiftPattern
	ConsecutiveDays int

	// LastShiftDate is empty until the employee's first placement
	LastShiftDate string
}

// ShiftPatternTracking maps employee ID to pattern state. Generator-scoped
// working state, rebuilt fresh per run.
type ShiftPatternTracking map[string]PatternState

// Tracking bundles both per-run accumulators
type Tracking struct {
	WeeklyHours   WeeklyHoursTracking
	ShiftPatterns ShiftPatternTracking
}

// InitializeTracking builds empty trackers keyed by employee ID
func InitializeTracking(employees []model.Employee) Tracking {
	tracking := Tracking{
		WeeklyHours:   make(WeeklyHoursTracking, len(employees)),
		ShiftPatterns: make(ShiftPatternTracking, len(employees)),
	}
	for _, e := range employees {
		tracking.WeeklyHours[e.ID] = make(map[string]float64)
		tracking.ShiftPatterns[e.ID] = PatternState{
			CurrentPattern:  e.ShiftPattern,
			ConsecutiveDays: 0,
			LastShiftDate:   "",
		}
	}
	return tracking
}

// UpdateShiftPattern returns a new tracking map recording a placement on
// the given date: a date exactly one calendar day after the last shift
// extends the consecutive run, anything else starts a new run of one.
// The input map is not mutated.
func UpdateShiftPattern(tracking ShiftPatternTracking, employeeID, date string) (ShiftPatternTracking, error) {
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	updated := make(ShiftPatternTracking, len(tracking))
	for id, state := range tracking {
		updated[id] = state
	}

	state := updated[employeeID]
	if state.LastShiftDate != "" {
		last, err := ParseDate(state.LastShiftDate)
		if err != nil {
			return nil, err
		}
		if d.Equal(last.AddDate(0, 0, 1)) {
			state.ConsecutiveDays++
		} else {
			state.ConsecutiveDays = 1
		}
	} else {
		state.ConsecutiveDays = 1
	}
	state.LastShiftDate = date
	updated[employeeID] = state

	return updated, nil
}

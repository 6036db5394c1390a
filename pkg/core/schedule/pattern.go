package schedule

import (
	"fmt"
	"sort"

	"github.com/dispatch-rota/scheduler/pkg/core/model"
)

const patternShiftCount = 4

// sortByDate returns the assignments ordered by ascending date without
// touching the caller's slice
func sortByDate(assignments []model.ShiftAssignment) []model.ShiftAssignment {
	sorted := make([]model.ShiftAssignment, len(assignments))
	copy(sorted, assignments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}

// ValidateShiftPattern checks that a work cycle's assignments conform to the
// named pattern shape: "4x10" requires four 10-hour shifts, "3x12+4"
// requires three 12-hour shifts followed by one 4-hour shift (by date
// order). A count mismatch short-circuits the per-shift duration checks;
// duration violations are otherwise all accumulated.
func ValidateShiftPattern(assignments []model.ShiftAssignment, pattern model.ShiftPattern) ValidationResult {
	var errors []string

	if len(assignments) != patternShiftCount {
		errors = append(errors, fmt.Sprintf("Pattern requires %d shifts, but found %d", patternShiftCount, len(assignments)))
		return resultFromErrors(errors)
	}

	sorted := sortByDate(assignments)

	switch pattern {
	case model.PatternFourTen:
		for _, a := range sorted {
			hours, err := ShiftDurationHours(a.StartTime, a.EndTime)
			if err != nil {
				errors = append(errors, err.Error())
				continue
			}
			if hours != 10 {
				errors = append(errors, fmt.Sprintf("Shift on %s is not 10 hours long", a.Date))
			}
		}
	case model.PatternThreeTwelvePlusFour:
		for i, a := range sorted {
			hours, err := ShiftDurationHours(a.StartTime, a.EndTime)
			if err != nil {
				errors = append(errors, err.Error())
				continue
			}
			if i < 3 && hours != 12 {
				errors = append(errors, fmt.Sprintf("Shift on %s is not 12 hours long", a.Date))
			}
			if i == 3 && hours != 4 {
				errors = append(errors, fmt.Sprintf("Shift on %s is not 4 hours long", a.Date))
			}
		}
	default:
		errors = append(errors, fmt.Sprintf("Unknown shift pattern: %s", pattern))
	}

	return resultFromErrors(errors)
}

// CheckConsecutiveDays verifies the assignments occupy consecutive calendar
// days. Sorted by date, every adjacent pair must differ by exactly one day.
// A list of one or zero assignments is trivially valid.
func CheckConsecutiveDays(assignments []model.ShiftAssignment) ValidationResult {
	if len(assignments) <= 1 {
		return validResult()
	}

	sorted := sortByDate(assignments)

	for i := 1; i < len(sorted); i++ {
		prev, err := ParseDate(sorted[i-1].Date)
		if err != nil {
			return resultFromErrors([]string{err.Error()})
		}
		curr, err := ParseDate(sorted[i].Date)
		if err != nil {
			return resultFromErrors([]string{err.Error()})
		}
		if !curr.Equal(prev.AddDate(0, 0, 1)) {
			return resultFromErrors([]string{"Shifts must be on consecutive days"})
		}
	}

	return validResult()
}

package schedule

import "github.com/dispatch-rota/scheduler/pkg/core/model"

// CanMutateAssignment guards update and status-transition actions: a shift
// dated before today can no longer be changed
func CanMutateAssignment(assignment model.ShiftAssignment, today string) ValidationResult {
	if assignment.Date < today {
		return resultFromErrors([]string{"Cannot modify a shift in the past"})
	}
	return validResult()
}

// CanCancelAssignment guards cancellation: removing the shift must not
// introduce a staffing violation that the schedule did not already have.
// The assignment is matched by ID within the full set.
func CanCancelAssignment(
	assignment model.ShiftAssignment,
	allAssignments []model.ShiftAssignment,
	requirements []model.StaffingRequirement,
	today string,
) ValidationResult {
	if mutable := CanMutateAssignment(assignment, today); !mutable.Valid {
		return mutable
	}

	before := ValidateSchedule(allAssignments, requirements)

	remaining := make([]model.ShiftAssignment, 0, len(allAssignments))
	for _, a := range allAssignments {
		if a.ID != assignment.ID {
			remaining = append(remaining, a)
		}
	}
	after := ValidateSchedule(remaining, requirements)

	if len(after.Errors) > len(before.Errors) {
		return resultFromErrors([]string{
			"Cannot cancel shift: staffing would drop below the required minimum",
		})
	}
	return validResult()
}

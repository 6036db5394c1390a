package schedule

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dispatch-rota/scheduler/pkg/core/model"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// RequirementAppliesOn reports whether a staffing block applies on the given
// date, honoring its weekday restriction and holiday-only flag
func RequirementAppliesOn(req model.StaffingRequirement, date time.Time, holidays map[string]bool) bool {
	if req.HolidayOnly && !holidays[FormatDate(date)] {
		return false
	}
	if req.DayOfWeek != "" && req.DayOfWeek != date.Weekday().String() {
		return false
	}
	return true
}

// AssignmentsInBlock returns the non-cancelled assignments whose shift time
// overlaps the requirement's time block, midnight-aware
func AssignmentsInBlock(assignments []model.ShiftAssignment, req model.StaffingRequirement) ([]model.ShiftAssignment, error) {
	var inBlock []model.ShiftAssignment
	for _, a := range assignments {
		if a.Status == model.StatusCancelled {
			continue
		}
		overlapping, err := TimeRangesOverlap(a.StartTime, a.EndTime, req.StartTime, req.EndTime)
		if err != nil {
			return nil, err
		}
		if overlapping {
			inBlock = append(inBlock, a)
		}
	}
	return inBlock, nil
}

// ValidateSchedule checks a set of assignments against every staffing
// requirement block. Each block independently imposes its headcount and
// supervisor floors; all violations are accumulated.
func ValidateSchedule(assignments []model.ShiftAssignment, requirements []model.StaffingRequirement) ValidationResult {
	var errors []string

	for _, req := range requirements {
		inBlock, err := AssignmentsInBlock(assignments, req)
		if err != nil {
			errors = append(errors, err.Error())
			continue
		}

		if len(inBlock) < req.MinEmployees {
			errors = append(errors, fmt.Sprintf(
				"Insufficient staffing during %s-%s: %d employees scheduled, minimum %d required",
				req.StartTime, req.EndTime, len(inBlock), req.MinEmployees))
		}

		if req.RequiresSupervisor() {
			supervisors := 0
			for _, a := range inBlock {
				if a.IsSupervisor {
					supervisors++
				}
			}
			if supervisors == 0 {
				errors = append(errors, fmt.Sprintf(
					"No supervisor scheduled during %s-%s", req.StartTime, req.EndTime))
			}
		}
	}

	return resultFromErrors(errors)
}

// ValidateShiftAssignment runs field-level checks on a single assignment:
// date and time formats plus the legal 4/10/12 hour durations
func ValidateShiftAssignment(assignment model.ShiftAssignment) ValidationResult {
	var errors []string

	if !datePattern.MatchString(assignment.Date) {
		errors = append(errors, "Invalid date format: must be YYYY-MM-DD")
	}

	timesValid := true
	if !timePattern.MatchString(assignment.StartTime) {
		errors = append(errors, "Invalid time format: startTime must be in HH:mm format")
		timesValid = false
	}
	if !timePattern.MatchString(assignment.EndTime) {
		errors = append(errors, "Invalid time format: endTime must be in HH:mm format")
		timesValid = false
	}

	if timesValid {
		hours, err := ShiftDurationHours(assignment.StartTime, assignment.EndTime)
		if err != nil {
			errors = append(errors, err.Error())
		} else if hours != 4 && hours != 10 && hours != 12 {
			errors = append(errors, "Invalid shift duration: must be either 4, 10, or 12 hours")
		}
	}

	return resultFromErrors(errors)
}

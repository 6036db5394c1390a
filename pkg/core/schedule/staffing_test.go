package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispatch-rota/scheduler/pkg/core/model"
)

func TestValidateSchedule_InsufficientStaffing(t *testing.T) {
	requirement := model.StaffingRequirement{
		StartTime:    "05:00",
		EndTime:      "09:00",
		MinEmployees: 6,
	}

	assignments := []model.ShiftAssignment{
		{EmployeeID: "emp-1", Date: "2024-03-15", StartTime: "05:00", EndTime: "15:00", Status: model.StatusScheduled},
		{EmployeeID: "emp-2", Date: "2024-03-15", StartTime: "06:00", EndTime: "16:00", Status: model.StatusScheduled},
		{EmployeeID: "emp-3", Date: "2024-03-15", StartTime: "08:00", EndTime: "18:00", Status: model.StatusScheduled},
	}

	result := ValidateSchedule(assignments, []model.StaffingRequirement{requirement})
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t,
		"Insufficient staffing during 05:00-09:00: 3 employees scheduled, minimum 6 required",
		result.Errors[0])
}

func TestValidateSchedule_MissingSupervisor(t *testing.T) {
	requirement := model.StaffingRequirement{
		StartTime:      "08:00",
		EndTime:        "12:00",
		MinEmployees:   1,
		MinSupervisors: 1,
	}

	assignments := []model.ShiftAssignment{
		{EmployeeID: "emp-1", Date: "2024-03-15", StartTime: "08:00", EndTime: "18:00", IsSupervisor: false},
	}

	result := ValidateSchedule(assignments, []model.StaffingRequirement{requirement})
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "No supervisor scheduled during 08:00-12:00", result.Errors[0])
}

func TestValidateSchedule_SupervisorSatisfies(t *testing.T) {
	requirement := model.StaffingRequirement{
		StartTime:      "08:00",
		EndTime:        "12:00",
		MinEmployees:   1,
		MinSupervisors: 1,
	}

	assignments := []model.ShiftAssignment{
		{EmployeeID: "sup-1", Date: "2024-03-15", StartTime: "08:00", EndTime: "18:00", IsSupervisor: true},
	}

	result := ValidateSchedule(assignments, []model.StaffingRequirement{requirement})
	assert.True(t, result.Valid)
}

func TestValidateSchedule_CancelledShiftsExcluded(t *testing.T) {
	requirement := model.StaffingRequirement{
		StartTime:    "08:00",
		EndTime:      "12:00",
		MinEmployees: 1,
	}

	assignments := []model.ShiftAssignment{
		{EmployeeID: "emp-1", Date: "2024-03-15", StartTime: "08:00", EndTime: "18:00", Status: model.StatusCancelled},
	}

	result := ValidateSchedule(assignments, []model.StaffingRequirement{requirement})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "Insufficient staffing during 08:00-12:00")
}

func TestValidateSchedule_MidnightShiftCoversEarlyBlock(t *testing.T) {
	requirement := model.StaffingRequirement{
		StartTime:    "05:00",
		EndTime:      "09:00",
		MinEmployees: 1,
	}

	// A graveyard shift crossing midnight overlaps the early block
	assignments := []model.ShiftAssignment{
		{EmployeeID: "emp-1", Date: "2024-03-15", StartTime: "20:00", EndTime: "06:00"},
	}

	result := ValidateSchedule(assignments, []model.StaffingRequirement{requirement})
	assert.True(t, result.Valid)
}

func TestValidateSchedule_OverlappingBlocksEachImposeFloors(t *testing.T) {
	requirements := []model.StaffingRequirement{
		{StartTime: "08:00", EndTime: "16:00", MinEmployees: 1},
		{StartTime: "12:00", EndTime: "20:00", MinEmployees: 2},
	}

	assignments := []model.ShiftAssignment{
		{EmployeeID: "emp-1", Date: "2024-03-15", StartTime: "08:00", EndTime: "18:00"},
	}

	result := ValidateSchedule(assignments, requirements)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t,
		"Insufficient staffing during 12:00-20:00: 1 employees scheduled, minimum 2 required",
		result.Errors[0])
}

func TestValidateSchedule_Idempotent(t *testing.T) {
	requirements := []model.StaffingRequirement{
		{StartTime: "05:00", EndTime: "09:00", MinEmployees: 3, MinSupervisors: 1},
	}
	assignments := []model.ShiftAssignment{
		{EmployeeID: "emp-1", Date: "2024-03-15", StartTime: "05:00", EndTime: "15:00"},
	}

	first := ValidateSchedule(assignments, requirements)
	second := ValidateSchedule(assignments, requirements)
	assert.Equal(t, first, second)
}

func TestValidateShiftAssignment(t *testing.T) {
	assignment := model.ShiftAssignment{
		Date:      "2024-03-15",
		StartTime: "08:00",
		EndTime:   "18:00",
	}

	result := ValidateShiftAssignment(assignment)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateShiftAssignment_BadDateFormat(t *testing.T) {
	assignment := model.ShiftAssignment{
		Date:      "15/03/2024",
		StartTime: "08:00",
		EndTime:   "18:00",
	}

	result := ValidateShiftAssignment(assignment)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Invalid date format: must be YYYY-MM-DD")
}

func TestValidateShiftAssignment_BadTimeFormat(t *testing.T) {
	assignment := model.ShiftAssignment{
		Date:      "2024-03-15",
		StartTime: "8:00",
		EndTime:   "24:00",
	}

	result := ValidateShiftAssignment(assignment)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Invalid time format: startTime must be in HH:mm format")
	assert.Contains(t, result.Errors, "Invalid time format: endTime must be in HH:mm format")
}

func TestValidateShiftAssignment_BadDuration(t *testing.T) {
	// 09:00-17:00 is 8 hours, not a legal shift length
	assignment := model.ShiftAssignment{
		Date:      "2024-03-15",
		StartTime: "09:00",
		EndTime:   "17:00",
	}

	result := ValidateShiftAssignment(assignment)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Invalid shift duration: must be either 4, 10, or 12 hours", result.Errors[0])
}

func TestValidateShiftAssignment_MidnightCrossingDurationLegal(t *testing.T) {
	assignment := model.ShiftAssignment{
		Date:      "2024-03-15",
		StartTime: "20:00",
		EndTime:   "06:00",
	}

	result := ValidateShiftAssignment(assignment)
	assert.True(t, result.Valid)
}

func TestValidateShiftAssignment_AccumulatesAllErrors(t *testing.T) {
	assignment := model.ShiftAssignment{
		Date:      "bad",
		StartTime: "worse",
		EndTime:   "08:00",
	}

	result := ValidateShiftAssignment(assignment)
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 2)
}

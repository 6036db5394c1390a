package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispatch-rota/scheduler/pkg/core/model"
)

func tenHourShift(date string) model.ShiftAssignment {
	return model.ShiftAssignment{Date: date, StartTime: "08:00", EndTime: "18:00"}
}

func twelveHourShift(date string) model.ShiftAssignment {
	return model.ShiftAssignment{Date: date, StartTime: "06:00", EndTime: "18:00"}
}

func fourHourShift(date string) model.ShiftAssignment {
	return model.ShiftAssignment{Date: date, StartTime: "14:00", EndTime: "18:00"}
}

func TestValidateShiftPattern_FourTen(t *testing.T) {
	assignments := []model.ShiftAssignment{
		tenHourShift("2024-03-11"),
		tenHourShift("2024-03-12"),
		tenHourShift("2024-03-13"),
		tenHourShift("2024-03-14"),
	}

	result := ValidateShiftPattern(assignments, model.PatternFourTen)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateShiftPattern_FourTen_WrongDuration(t *testing.T) {
	assignments := []model.ShiftAssignment{
		tenHourShift("2024-03-11"),
		twelveHourShift("2024-03-12"),
		tenHourShift("2024-03-13"),
		tenHourShift("2024-03-14"),
	}

	result := ValidateShiftPattern(assignments, model.PatternFourTen)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Shift on 2024-03-12 is not 10 hours long", result.Errors[0])
}

func TestValidateShiftPattern_WrongCount(t *testing.T) {
	assignments := []model.ShiftAssignment{
		tenHourShift("2024-03-11"),
		tenHourShift("2024-03-12"),
	}

	result := ValidateShiftPattern(assignments, model.PatternFourTen)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Pattern requires 4 shifts, but found 2", result.Errors[0])
}

func TestValidateShiftPattern_ThreeTwelvePlusFour(t *testing.T) {
	assignments := []model.ShiftAssignment{
		twelveHourShift("2024-03-11"),
		twelveHourShift("2024-03-12"),
		twelveHourShift("2024-03-13"),
		fourHourShift("2024-03-14"),
	}

	result := ValidateShiftPattern(assignments, model.PatternThreeTwelvePlusFour)
	assert.True(t, result.Valid)
}

func TestValidateShiftPattern_ThreeTwelvePlusFour_OutOfShape(t *testing.T) {
	// The 4-hour shift lands in the middle by date order
	assignments := []model.ShiftAssignment{
		twelveHourShift("2024-03-11"),
		fourHourShift("2024-03-12"),
		twelveHourShift("2024-03-13"),
		twelveHourShift("2024-03-14"),
	}

	result := ValidateShiftPattern(assignments, model.PatternThreeTwelvePlusFour)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Shift on 2024-03-12 is not 12 hours long")
	assert.Contains(t, result.Errors, "Shift on 2024-03-14 is not 4 hours long")
}

func TestValidateShiftPattern_AccumulatesAllViolations(t *testing.T) {
	assignments := []model.ShiftAssignment{
		twelveHourShift("2024-03-11"),
		twelveHourShift("2024-03-12"),
		twelveHourShift("2024-03-13"),
		twelveHourShift("2024-03-14"),
	}

	result := ValidateShiftPattern(assignments, model.PatternFourTen)
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 4)
}

func TestCheckConsecutiveDays(t *testing.T) {
	assignments := []model.ShiftAssignment{
		tenHourShift("2024-03-11"),
		tenHourShift("2024-03-12"),
		tenHourShift("2024-03-13"),
		tenHourShift("2024-03-14"),
	}

	result := CheckConsecutiveDays(assignments)
	assert.True(t, result.Valid)
}

func TestCheckConsecutiveDays_Gap(t *testing.T) {
	assignments := []model.ShiftAssignment{
		tenHourShift("2025-01-01"),
		tenHourShift("2025-01-03"),
		tenHourShift("2025-01-04"),
	}

	result := CheckConsecutiveDays(assignments)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Shifts must be on consecutive days", result.Errors[0])
}

func TestCheckConsecutiveDays_UnsortedInput(t *testing.T) {
	assignments := []model.ShiftAssignment{
		tenHourShift("2024-03-13"),
		tenHourShift("2024-03-11"),
		tenHourShift("2024-03-12"),
	}

	result := CheckConsecutiveDays(assignments)
	assert.True(t, result.Valid)
}

func TestCheckConsecutiveDays_SingleAssignment(t *testing.T) {
	result := CheckConsecutiveDays([]model.ShiftAssignment{tenHourShift("2024-03-11")})
	assert.True(t, result.Valid)

	result = CheckConsecutiveDays(nil)
	assert.True(t, result.Valid)
}

func TestCheckConsecutiveDays_CrossesMonthBoundary(t *testing.T) {
	assignments := []model.ShiftAssignment{
		tenHourShift("2024-02-28"),
		tenHourShift("2024-02-29"),
		tenHourShift("2024-03-01"),
	}

	result := CheckConsecutiveDays(assignments)
	assert.True(t, result.Valid)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dispatch-rota/scheduler/pkg/core/model"
)

// mockCreateStore implements CreateAssignmentStore for testing
type mockCreateStore struct {
	existing []model.ShiftAssignment
	inserted []model.ShiftAssignment
}

func (m *mockCreateStore) GetAssignments(ctx context.Context, startDate, endDate string) ([]model.ShiftAssignment, error) {
	return m.existing, nil
}

func (m *mockCreateStore) InsertAssignment(ctx context.Context, assignment model.ShiftAssignment) error {
	m.inserted = append(m.inserted, assignment)
	return nil
}

func TestCreateAssignment(t *testing.T) {
	store := &mockCreateStore{}

	created, result, err := CreateAssignment(context.Background(), store, zap.NewNop(), model.ShiftAssignment{
		EmployeeID: "emp-1",
		Date:       "2030-01-07",
		StartTime:  "08:00",
		EndTime:    "18:00",
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.StatusScheduled, created.Status)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, created.ID, store.inserted[0].ID)
}

func TestCreateAssignment_InvalidDuration(t *testing.T) {
	store := &mockCreateStore{}

	created, result, err := CreateAssignment(context.Background(), store, zap.NewNop(), model.ShiftAssignment{
		EmployeeID: "emp-1",
		Date:       "2030-01-07",
		StartTime:  "09:00",
		EndTime:    "17:00",
	})
	require.NoError(t, err)
	assert.Nil(t, created)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Invalid shift duration: must be either 4, 10, or 12 hours")
	assert.Empty(t, store.inserted)
}

func TestCreateAssignment_PastDateRefused(t *testing.T) {
	store := &mockCreateStore{}

	created, result, err := CreateAssignment(context.Background(), store, zap.NewNop(), model.ShiftAssignment{
		EmployeeID: "emp-1",
		Date:       "2020-01-06",
		StartTime:  "08:00",
		EndTime:    "18:00",
	})
	require.NoError(t, err)
	assert.Nil(t, created)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Cannot modify a shift in the past")
	assert.Empty(t, store.inserted)
}

func TestCreateAssignment_DoubleBookingRefused(t *testing.T) {
	store := &mockCreateStore{
		existing: []model.ShiftAssignment{
			{ID: "s-1", EmployeeID: "emp-1", Date: "2030-01-07", StartTime: "06:00", EndTime: "18:00"},
		},
	}

	created, result, err := CreateAssignment(context.Background(), store, zap.NewNop(), model.ShiftAssignment{
		EmployeeID: "emp-1",
		Date:       "2030-01-07",
		StartTime:  "14:00",
		EndTime:    "18:00",
	})
	require.NoError(t, err)
	assert.Nil(t, created)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "Employee already has an overlapping shift on this date")
	assert.Empty(t, store.inserted)
}

func TestCreateAssignment_CancelledShiftDoesNotBlock(t *testing.T) {
	store := &mockCreateStore{
		existing: []model.ShiftAssignment{
			{ID: "s-1", EmployeeID: "emp-1", Date: "2030-01-07", StartTime: "06:00", EndTime: "18:00", Status: model.StatusCancelled},
		},
	}

	created, result, err := CreateAssignment(context.Background(), store, zap.NewNop(), model.ShiftAssignment{
		EmployeeID: "emp-1",
		Date:       "2030-01-07",
		StartTime:  "14:00",
		EndTime:    "18:00",
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	require.NotNil(t, created)
	require.Len(t, store.inserted, 1)
}

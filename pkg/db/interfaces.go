package db

import (
	"context"

	"github.com/dispatch-rota/scheduler/pkg/core/model"
)

// RosterStore defines read operations over employees and shift templates
type RosterStore interface {
	GetRoster(ctx context.Context, periodID string) ([]model.Employee, error)
	GetShiftOptions(ctx context.Context) ([]model.ShiftOption, error)
}

// AssignmentStore defines shift assignment operations
type AssignmentStore interface {
	GetAssignment(ctx context.Context, id string) (*model.ShiftAssignment, error)
	GetAssignments(ctx context.Context, startDate, endDate string) ([]model.ShiftAssignment, error)
	InsertAssignment(ctx context.Context, assignment model.ShiftAssignment) error
	InsertAssignments(ctx context.Context, assignments []model.ShiftAssignment) error
	UpdateAssignmentStatus(ctx context.Context, id string, status model.AssignmentStatus) error
}

// TimeOffStore defines time-off request operations
type TimeOffStore interface {
	GetApprovedTimeOff(ctx context.Context, startDate, endDate string) ([]model.TimeOffRequest, error)
	GetTimeOffRequests(ctx context.Context, employeeID string) ([]model.TimeOffRequest, error)
	InsertTimeOffRequest(ctx context.Context, request model.TimeOffRequest) error
}

// Database defines the full set of store operations the application needs.
// The postgres package implements this interface; core packages depend only
// on the narrow per-service subsets they declare themselves.
type Database interface {
	RosterStore
	AssignmentStore
	TimeOffStore
	GetSchedulePeriod(ctx context.Context, periodID string) (*model.SchedulePeriod, error)
	GetStaffingRequirements(ctx context.Context) ([]model.StaffingRequirement, error)
}

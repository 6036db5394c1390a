package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dispatch-rota/scheduler/internal/config"
	"github.com/dispatch-rota/scheduler/pkg/core/model"
	"github.com/dispatch-rota/scheduler/pkg/core/schedule"
)

// ErrAssignmentNotFound is returned when the assignment ID is unknown
var ErrAssignmentNotFound = errors.New("assignment not found")

// CancelAssignmentStore defines the database operations needed to cancel a
// shift assignment
type CancelAssignmentStore interface {
	GetAssignment(ctx context.Context, id string) (*model.ShiftAssignment, error)
	GetAssignments(ctx context.Context, startDate, endDate string) ([]model.ShiftAssignment, error)
	GetStaffingRequirements(ctx context.Context) ([]model.StaffingRequirement, error)
	UpdateAssignmentStatus(ctx context.Context, id string, status model.AssignmentStatus) error
}

// CancelAssignment cancels a scheduled shift, refusing when the shift is
// already in the past or when removing it would push a staffing block on
// that date below its floor. Only blocks applicable on the shift's date are
// considered.
func CancelAssignment(ctx context.Context, store CancelAssignmentStore, cfg *config.Config, logger *zap.Logger, assignmentID string) (schedule.ValidationResult, error) {
	assignment, err := store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return schedule.ValidationResult{}, fmt.Errorf("failed to fetch assignment: %w", err)
	}
	if assignment == nil {
		return schedule.ValidationResult{}, ErrAssignmentNotFound
	}

	date, err := schedule.ParseDate(assignment.Date)
	if err != nil {
		return schedule.ValidationResult{}, err
	}

	dayAssignments, err := store.GetAssignments(ctx, assignment.Date, assignment.Date)
	if err != nil {
		return schedule.ValidationResult{}, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	requirements, err := store.GetStaffingRequirements(ctx)
	if err != nil {
		return schedule.ValidationResult{}, fmt.Errorf("failed to fetch staffing requirements: %w", err)
	}

	holidays := map[string]bool{}
	if cfg != nil && len(cfg.HolidayRules) > 0 {
		holidays, err = config.ExpandHolidays(cfg.HolidayRules, date, date)
		if err != nil {
			return schedule.ValidationResult{}, fmt.Errorf("failed to expand holiday rules: %w", err)
		}
	}

	var applicable []model.StaffingRequirement
	for _, req := range requirements {
		if schedule.RequirementAppliesOn(req, date, holidays) {
			applicable = append(applicable, req)
		}
	}

	today := schedule.FormatDate(time.Now())
	result := schedule.CanCancelAssignment(*assignment, dayAssignments, applicable, today)
	if !result.Valid {
		return result, nil
	}

	if err := store.UpdateAssignmentStatus(ctx, assignmentID, model.StatusCancelled); err != nil {
		return schedule.ValidationResult{}, fmt.Errorf("failed to cancel assignment: %w", err)
	}

	logger.Info("Shift cancelled",
		zap.String("assignment_id", assignmentID),
		zap.String("employee_id", assignment.EmployeeID),
		zap.String("date", assignment.Date))

	return result, nil
}

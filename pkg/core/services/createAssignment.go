package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dispatch-rota/scheduler/pkg/core/model"
	"github.com/dispatch-rota/scheduler/pkg/core/schedule"
)

// CreateAssignmentStore defines the database operations needed to file a
// manually placed shift
type CreateAssignmentStore interface {
	GetAssignments(ctx context.Context, startDate, endDate string) ([]model.ShiftAssignment, error)
	InsertAssignment(ctx context.Context, assignment model.ShiftAssignment) error
}

// CreateAssignment files a manually placed shift. Field formats and the
// legal shift durations are checked first, then the past-date guard, then a
// double-booking check against the employee's other shifts that day. An
// invalid assignment is reported in the result with a nil error and nothing
// is persisted.
func CreateAssignment(ctx context.Context, store CreateAssignmentStore, logger *zap.Logger, assignment model.ShiftAssignment) (*model.ShiftAssignment, schedule.ValidationResult, error) {
	if result := schedule.ValidateShiftAssignment(assignment); !result.Valid {
		return nil, result, nil
	}

	today := schedule.FormatDate(time.Now())
	if result := schedule.CanMutateAssignment(assignment, today); !result.Valid {
		return nil, result, nil
	}

	existing, err := store.GetAssignments(ctx, assignment.Date, assignment.Date)
	if err != nil {
		return nil, schedule.ValidationResult{}, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	for _, other := range existing {
		if other.EmployeeID != assignment.EmployeeID || other.Status == model.StatusCancelled {
			continue
		}
		overlapping, err := schedule.TimeRangesOverlap(assignment.StartTime, assignment.EndTime, other.StartTime, other.EndTime)
		if err != nil {
			return nil, schedule.ValidationResult{}, err
		}
		if overlapping {
			return nil, schedule.ValidationResult{
				Errors: []string{"Employee already has an overlapping shift on this date"},
			}, nil
		}
	}

	assignment.ID = uuid.NewString()
	if assignment.Status == "" {
		assignment.Status = model.StatusScheduled
	}
	if err := store.InsertAssignment(ctx, assignment); err != nil {
		return nil, schedule.ValidationResult{}, fmt.Errorf("failed to insert assignment: %w", err)
	}

	logger.Info("Shift assignment created",
		zap.String("assignment_id", assignment.ID),
		zap.String("employee_id", assignment.EmployeeID),
		zap.String("date", assignment.Date))

	return &assignment, schedule.ValidationResult{Valid: true, Errors: []string{}}, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dispatch-rota/scheduler/pkg/core/model"
	"github.com/dispatch-rota/scheduler/pkg/core/schedule"
)

// RequestTimeOffStore defines the database operations needed to file a
// time-off request
type RequestTimeOffStore interface {
	GetTimeOffRequests(ctx context.Context, employeeID string) ([]model.TimeOffRequest, error)
	InsertTimeOffRequest(ctx context.Context, request model.TimeOffRequest) error
}

// ErrTimeOffConflict is returned when the request overlaps an approved one
type ErrTimeOffConflict struct {
	EmployeeID string
	StartDate  string
	EndDate    string
}

func (e *ErrTimeOffConflict) Error() string {
	return fmt.Sprintf("time off request %s to %s overlaps an approved request for employee %s",
		e.StartDate, e.EndDate, e.EmployeeID)
}

// RequestTimeOff validates a new time-off request against the employee's
// existing approved requests and files it as pending
func RequestTimeOff(ctx context.Context, store RequestTimeOffStore, logger *zap.Logger, employeeID, startDate, endDate string) (*model.TimeOffRequest, error) {
	if _, err := schedule.ParseDate(startDate); err != nil {
		return nil, err
	}
	if _, err := schedule.ParseDate(endDate); err != nil {
		return nil, err
	}
	if endDate < startDate {
		return nil, fmt.Errorf("end date %s is before start date %s", endDate, startDate)
	}

	existing, err := store.GetTimeOffRequests(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing time off requests: %w", err)
	}

	request := model.TimeOffRequest{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     model.TimeOffPending,
	}

	conflicting, err := schedule.CheckTimeOffRequestConflicts(request, existing)
	if err != nil {
		return nil, err
	}
	if conflicting {
		return nil, &ErrTimeOffConflict{EmployeeID: employeeID, StartDate: startDate, EndDate: endDate}
	}

	if err := store.InsertTimeOffRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to insert time off request: %w", err)
	}

	logger.Info("Time off request filed",
		zap.String("employee_id", employeeID),
		zap.String("start_date", startDate),
		zap.String("end_date", endDate))

	return &request, nil
}

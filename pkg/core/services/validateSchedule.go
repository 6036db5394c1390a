package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dispatch-rota/scheduler/internal/config"
	"github.com/dispatch-rota/scheduler/pkg/core/model"
	"github.com/dispatch-rota/scheduler/pkg/core/schedule"
)

// ValidateScheduleStore defines the database operations needed to validate
// a stored schedule period
type ValidateScheduleStore interface {
	GetSchedulePeriod(ctx context.Context, periodID string) (*model.SchedulePeriod, error)
	GetAssignments(ctx context.Context, startDate, endDate string) ([]model.ShiftAssignment, error)
	GetStaffingRequirements(ctx context.Context) ([]model.StaffingRequirement, error)
}

// ValidateSchedulePeriod checks a period's stored assignments against the
// staffing requirement blocks one day at a time: each date's assignments are
// evaluated against the blocks applicable on that date, so a shortfall on
// one day is never masked by staffing on another. Violations are prefixed
// with the date they occur on.
func ValidateSchedulePeriod(ctx context.Context, store ValidateScheduleStore, cfg *config.Config, logger *zap.Logger, periodID string) (schedule.ValidationResult, error) {
	period, err := store.GetSchedulePeriod(ctx, periodID)
	if err != nil {
		return schedule.ValidationResult{}, fmt.Errorf("failed to fetch schedule period: %w", err)
	}
	if period == nil {
		return schedule.ValidationResult{}, fmt.Errorf("schedule period %s not found", periodID)
	}

	start, err := schedule.ParseDate(period.StartDate)
	if err != nil {
		return schedule.ValidationResult{}, err
	}
	end, err := schedule.ParseDate(period.EndDate)
	if err != nil {
		return schedule.ValidationResult{}, err
	}

	assignments, err := store.GetAssignments(ctx, period.StartDate, period.EndDate)
	if err != nil {
		return schedule.ValidationResult{}, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	requirements, err := store.GetStaffingRequirements(ctx)
	if err != nil {
		return schedule.ValidationResult{}, fmt.Errorf("failed to fetch staffing requirements: %w", err)
	}

	holidays := map[string]bool{}
	if cfg != nil && len(cfg.HolidayRules) > 0 {
		holidays, err = config.ExpandHolidays(cfg.HolidayRules, start, end)
		if err != nil {
			return schedule.ValidationResult{}, fmt.Errorf("failed to expand holiday rules: %w", err)
		}
	}

	byDate := make(map[string][]model.ShiftAssignment)
	for _, a := range assignments {
		byDate[a.Date] = append(byDate[a.Date], a)
	}

	violations := []string{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dateStr := schedule.FormatDate(d)

		var applicable []model.StaffingRequirement
		for _, req := range requirements {
			if schedule.RequirementAppliesOn(req, d, holidays) {
				applicable = append(applicable, req)
			}
		}
		if len(applicable) == 0 {
			continue
		}

		result := schedule.ValidateSchedule(byDate[dateStr], applicable)
		for _, msg := range result.Errors {
			violations = append(violations, fmt.Sprintf("%s: %s", dateStr, msg))
		}
	}

	valid := len(violations) == 0
	logger.Info("Schedule validated",
		zap.String("period_id", periodID),
		zap.Bool("valid", valid),
		zap.Int("violations", len(violations)))

	return schedule.ValidationResult{Valid: valid, Errors: violations}, nil
}

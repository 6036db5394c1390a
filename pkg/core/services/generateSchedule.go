package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dispatch-rota/scheduler/internal/config"
	"github.com/dispatch-rota/scheduler/pkg/core/generator"
	"github.com/dispatch-rota/scheduler/pkg/core/schedule"
)

// GenerateParams are the caller-facing knobs for a generation run
type GenerateParams struct {
	StartDate           string
	EndDate             string
	ConsiderPreferences bool
	AllowOvertime       bool
	DryRun              bool
}

// GenerateSchedule runs schedule generation for a period, expanding the
// configured holiday rules over the period so holiday-only staffing blocks
// apply on the right dates
func GenerateSchedule(
	ctx context.Context,
	store generator.Store,
	cfg *config.Config,
	logger *zap.Logger,
	periodID string,
	params GenerateParams,
) (*generator.Result, error) {
	genParams := generator.Params{
		StartDate:           params.StartDate,
		EndDate:             params.EndDate,
		ConsiderPreferences: params.ConsiderPreferences,
		AllowOvertime:       params.AllowOvertime,
		DryRun:              params.DryRun,
	}

	if cfg != nil && len(cfg.HolidayRules) > 0 {
		period, err := store.GetSchedulePeriod(ctx, periodID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch schedule period: %w", err)
		}
		if period != nil {
			startDate := period.StartDate
			if params.StartDate != "" {
				startDate = params.StartDate
			}
			endDate := period.EndDate
			if params.EndDate != "" {
				endDate = params.EndDate
			}

			start, err := schedule.ParseDate(startDate)
			if err != nil {
				return nil, err
			}
			end, err := schedule.ParseDate(endDate)
			if err != nil {
				return nil, err
			}

			holidays, err := config.ExpandHolidays(cfg.HolidayRules, start, end)
			if err != nil {
				return nil, fmt.Errorf("failed to expand holiday rules: %w", err)
			}
			genParams.Holidays = holidays
			logger.Debug("Expanded holiday rules",
				zap.Int("rules", len(cfg.HolidayRules)),
				zap.Int("holidays_in_period", len(holidays)))
		}
	}

	return generator.Generate(ctx, store, logger, periodID, genParams)
}

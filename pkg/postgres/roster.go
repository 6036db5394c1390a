package postgres

import (
	"context"
	"fmt"

	"github.com/dispatch-rota/scheduler/pkg/core/model"
)

// GetRoster retrieves the employees on the roster for a schedule period
func (db *DB) GetRoster(ctx context.Context, periodID string) ([]model.Employee, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT e.id, e.first_name, e.last_name, e.role, e.shift_pattern,
		       e.weekly_hours_cap, e.max_overtime_hours, e.preferred_shift_category
		FROM employee e
		JOIN roster_membership rm ON rm.employee_id = e.id
		WHERE rm.schedule_period_id = $1
		ORDER BY e.last_name, e.first_name
	`, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Role, &e.ShiftPattern,
			&e.WeeklyHoursCap, &e.MaxOvertimeHours, &e.PreferredShiftCategory); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster: %w", err)
	}

	return employees, nil
}

// GetShiftOptions retrieves all shift templates
func (db *DB) GetShiftOptions(ctx context.Context) ([]model.ShiftOption, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, category, start_time, end_time, duration_hours
		FROM shift_option
		ORDER BY start_time
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift options: %w", err)
	}
	defer rows.Close()

	var options []model.ShiftOption
	for rows.Next() {
		var o model.ShiftOption
		if err := rows.Scan(&o.ID, &o.Category, &o.StartTime, &o.EndTime, &o.DurationHours); err != nil {
			return nil, fmt.Errorf("failed to scan shift option: %w", err)
		}
		options = append(options, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift options: %w", err)
	}

	return options, nil
}

// GetSchedulePeriod retrieves a schedule period by ID. Returns nil when the
// period does not exist.
func (db *DB) GetSchedulePeriod(ctx context.Context, periodID string) (*model.SchedulePeriod, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, start_date::text, end_date::text, status
		FROM schedule_period
		WHERE id = $1
	`, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule period: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading schedule period: %w", err)
		}
		return nil, nil
	}

	var p model.SchedulePeriod
	if err := rows.Scan(&p.ID, &p.StartDate, &p.EndDate, &p.Status); err != nil {
		return nil, fmt.Errorf("failed to scan schedule period: %w", err)
	}
	return &p, nil
}

// GetStaffingRequirements retrieves all staffing requirement blocks
func (db *DB) GetStaffingRequirements(ctx context.Context) ([]model.StaffingRequirement, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, start_time, end_time, min_employees, min_supervisors, day_of_week, holiday_only
		FROM staffing_requirement
		ORDER BY start_time
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staffing requirements: %w", err)
	}
	defer rows.Close()

	var requirements []model.StaffingRequirement
	for rows.Next() {
		var r model.StaffingRequirement
		var dayOfWeek *string
		if err := rows.Scan(&r.ID, &r.StartTime, &r.EndTime, &r.MinEmployees,
			&r.MinSupervisors, &dayOfWeek, &r.HolidayOnly); err != nil {
			return nil, fmt.Errorf("failed to scan staffing requirement: %w", err)
		}
		if dayOfWeek != nil {
			r.DayOfWeek = *dayOfWeek
		}
		requirements = append(requirements, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staffing requirements: %w", err)
	}

	return requirements, nil
}

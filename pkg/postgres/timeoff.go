package postgres

import (
	"context"
	"fmt"

	"github.com/dispatch-rota/scheduler/pkg/core/model"
)

// GetApprovedTimeOff retrieves approved time-off requests whose date range
// touches [startDate, endDate]
func (db *DB) GetApprovedTimeOff(ctx context.Context, startDate, endDate string) ([]model.TimeOffRequest, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, employee_id, start_date::text, end_date::text, status
		FROM time_off_request
		WHERE status = 'approved'
		  AND start_date <= $2
		  AND end_date >= $1
		ORDER BY start_date
	`, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved time off: %w", err)
	}
	defer rows.Close()

	return scanTimeOffRequests(rows)
}

// GetTimeOffRequests retrieves all of an employee's time-off requests
func (db *DB) GetTimeOffRequests(ctx context.Context, employeeID string) ([]model.TimeOffRequest, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, employee_id, start_date::text, end_date::text, status
		FROM time_off_request
		WHERE employee_id = $1
		ORDER BY start_date
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time off requests: %w", err)
	}
	defer rows.Close()

	return scanTimeOffRequests(rows)
}

// InsertTimeOffRequest inserts a time-off request
func (db *DB) InsertTimeOffRequest(ctx context.Context, r model.TimeOffRequest) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO time_off_request (id, employee_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
	`, r.ID, r.EmployeeID, r.StartDate, r.EndDate, r.Status)
	if err != nil {
		return fmt.Errorf("failed to insert time off request: %w", err)
	}
	return nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanTimeOffRequests(rows rowScanner) ([]model.TimeOffRequest, error) {
	var requests []model.TimeOffRequest
	for rows.Next() {
		var r model.TimeOffRequest
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.StartDate, &r.EndDate, &r.Status); err != nil {
			return nil, fmt.Errorf("failed to scan time off request: %w", err)
		}
		requests = append(requests, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time off requests: %w", err)
	}

	return requests, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/dispatch-rota/scheduler/pkg/core/model"
)

// GetAssignment retrieves a shift assignment by ID. Returns nil when the
// assignment does not exist.
func (db *DB) GetAssignment(ctx context.Context, id string) (*model.ShiftAssignment, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, employee_id, shift_option_id, shift_date::text, start_time, end_time,
		       is_supervisor, status
		FROM shift_assignment
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading assignment: %w", err)
		}
		return nil, nil
	}

	var a model.ShiftAssignment
	var optionID *string
	if err := rows.Scan(&a.ID, &a.EmployeeID, &optionID, &a.Date, &a.StartTime,
		&a.EndTime, &a.IsSupervisor, &a.Status); err != nil {
		return nil, fmt.Errorf("failed to scan assignment: %w", err)
	}
	if optionID != nil {
		a.ShiftOptionID = *optionID
	}
	return &a, nil
}

// GetAssignments retrieves shift assignments dated within [startDate, endDate]
func (db *DB) GetAssignments(ctx context.Context, startDate, endDate string) ([]model.ShiftAssignment, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, employee_id, shift_option_id, shift_date::text, start_time, end_time,
		       is_supervisor, status
		FROM shift_assignment
		WHERE shift_date BETWEEN $1 AND $2
		ORDER BY shift_date, start_time
	`, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.ShiftAssignment
	for rows.Next() {
		var a model.ShiftAssignment
		var optionID *string
		if err := rows.Scan(&a.ID, &a.EmployeeID, &optionID, &a.Date, &a.StartTime,
			&a.EndTime, &a.IsSupervisor, &a.Status); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if optionID != nil {
			a.ShiftOptionID = *optionID
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// InsertAssignment inserts a single shift assignment
func (db *DB) InsertAssignment(ctx context.Context, a model.ShiftAssignment) error {
	var optionID *string
	if a.ShiftOptionID != "" {
		optionID = &a.ShiftOptionID
	}

	_, err := db.pool.Exec(ctx, `
		INSERT INTO shift_assignment (id, employee_id, shift_option_id, shift_date,
		                              start_time, end_time, is_supervisor, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, a.ID, a.EmployeeID, optionID, a.Date, a.StartTime, a.EndTime, a.IsSupervisor, a.Status)
	if err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

// InsertAssignments inserts shift assignments in one transaction
func (db *DB) InsertAssignments(ctx context.Context, assignments []model.ShiftAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		var optionID *string
		if a.ShiftOptionID != "" {
			optionID = &a.ShiftOptionID
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO shift_assignment (id, employee_id, shift_option_id, shift_date,
			                              start_time, end_time, is_supervisor, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, a.ID, a.EmployeeID, optionID, a.Date, a.StartTime, a.EndTime, a.IsSupervisor, a.Status)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateAssignmentStatus moves an assignment through its lifecycle
func (db *DB) UpdateAssignmentStatus(ctx context.Context, id string, status model.AssignmentStatus) error {
	tag, err := db.pool.Exec(ctx, `
		UPDATE shift_assignment SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assignment %s not found", id)
	}
	return nil
}

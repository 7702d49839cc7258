package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/andina-hr/timeclock-backend-go/internal/pkg/database"
)

type assignmentRepositoryImpl struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) schedule.AssignmentRepository {
	return &assignmentRepositoryImpl{db: db}
}

// ListForEmployees implements schedule.AssignmentRepository.
func (a *assignmentRepositoryImpl) ListForEmployees(ctx context.Context, employeeIDs []string, from, to time.Time) ([]schedule.CalendarAssignment, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, calendar_id, start_date, end_date
		FROM calendar_assignments
		WHERE employee_id = ANY($1)
			AND start_date <= $3
			AND (end_date IS NULL OR end_date >= $2)
		ORDER BY employee_id, start_date
	`
	rows, err := q.Query(ctx, query, employeeIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar assignments: %w", err)
	}
	defer rows.Close()

	var assignments []schedule.CalendarAssignment
	for rows.Next() {
		var asg schedule.CalendarAssignment
		if err := rows.Scan(&asg.ID, &asg.EmployeeID, &asg.CalendarID, &asg.StartDate, &asg.EndDate); err != nil {
			return nil, err
		}
		assignments = append(assignments, asg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

type exceptionRepositoryImpl struct {
	db *database.DB
}

func NewExceptionRepository(db *database.DB) schedule.ExceptionRepository {
	return &exceptionRepositoryImpl{db: db}
}

// ListApprovedForEmployees implements schedule.ExceptionRepository.
func (e *exceptionRepositoryImpl) ListApprovedForEmployees(ctx context.Context, employeeIDs []string, from, to time.Time) ([]schedule.ShiftException, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, employee_id, kind, date_from, date_to, calendar_id, approved
		FROM shift_exceptions
		WHERE employee_id = ANY($1)
			AND approved = TRUE
			AND date_from <= $3
			AND date_to >= $2
		ORDER BY employee_id, date_from
	`
	rows, err := q.Query(ctx, query, employeeIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift exceptions: %w", err)
	}
	defer rows.Close()

	var exceptions []schedule.ShiftException
	index := map[string]int{}
	var ids []string
	for rows.Next() {
		var ex schedule.ShiftException
		var kind string
		if err := rows.Scan(&ex.ID, &ex.EmployeeID, &kind, &ex.DateFrom, &ex.DateTo, &ex.CalendarID, &ex.Approved); err != nil {
			return nil, err
		}
		ex.Kind = schedule.ExceptionKind(kind)
		index[ex.ID] = len(exceptions)
		ids = append(ids, ex.ID)
		exceptions = append(exceptions, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(exceptions) == 0 {
		return exceptions, nil
	}

	rangeQuery := `
		SELECT id, exception_id, start_minutes, end_minutes
		FROM shift_exception_ranges
		WHERE exception_id = ANY($1)
		ORDER BY exception_id, start_minutes
	`
	rangeRows, err := q.Query(ctx, rangeQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift exception ranges: %w", err)
	}
	defer rangeRows.Close()

	for rangeRows.Next() {
		var r schedule.ExceptionRange
		if err := rangeRows.Scan(&r.ID, &r.ExceptionID, &r.StartMinutes, &r.EndMinutes); err != nil {
			return nil, err
		}
		i := index[r.ExceptionID]
		exceptions[i].Ranges = append(exceptions[i].Ranges, r)
	}
	if err := rangeRows.Err(); err != nil {
		return nil, err
	}
	return exceptions, nil
}

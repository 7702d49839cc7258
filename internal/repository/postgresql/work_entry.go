package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
	"github.com/andina-hr/timeclock-backend-go/internal/pkg/database"
)

type workEntryRepositoryImpl struct {
	db *database.DB
}

func NewWorkEntryRepository(db *database.DB) workentry.WorkEntryRepository {
	return &workEntryRepositoryImpl{db: db}
}

// UpsertEntries implements workentry.WorkEntryRepository.
func (w *workEntryRepositoryImpl) UpsertEntries(ctx context.Context, entries []workentry.WorkEntry) error {
	if len(entries) == 0 {
		return nil
	}
	q := GetQuerier(ctx, w.db)

	query := `
		INSERT INTO work_entries (id, employee_id, start_at, end_at, category)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, start_at, category)
		DO UPDATE SET end_at = EXCLUDED.end_at, updated_at = NOW()
	`
	for _, e := range entries {
		id := e.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := q.Exec(ctx, query, id, e.EmployeeID, e.StartAt, e.EndAt, string(e.Category)); err != nil {
			return fmt.Errorf("failed to upsert work entry: %w", err)
		}
	}
	return nil
}

// List implements workentry.WorkEntryRepository.
func (w *workEntryRepositoryImpl) List(ctx context.Context, filter workentry.ListFilter) ([]workentry.WorkEntry, int64, error) {
	q := GetQuerier(ctx, w.db)

	where := " WHERE 1=1"
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.EmployeeID != "" {
		where += " AND employee_id = " + arg(filter.EmployeeID)
	}
	if filter.From != nil {
		where += " AND start_at >= " + arg(*filter.From)
	}
	if filter.To != nil {
		where += " AND start_at < " + arg(*filter.To)
	}
	if filter.Category != "" {
		where += " AND category = " + arg(filter.Category)
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM work_entries"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count work entries: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := `
		SELECT id, employee_id, start_at, end_at, category, created_at, updated_at
		FROM work_entries` + where + `
		ORDER BY employee_id, start_at
		LIMIT ` + arg(limit) + ` OFFSET ` + arg((page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list work entries: %w", err)
	}
	defer rows.Close()

	var entries []workentry.WorkEntry
	for rows.Next() {
		var e workentry.WorkEntry
		var category string
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.StartAt, &e.EndAt, &category, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		e.Category = workentry.Category(category)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListCounters implements workentry.WorkEntryRepository.
func (w *workEntryRepositoryImpl) ListCounters(ctx context.Context, employeeIDs []string, from, to time.Time) ([]workentry.Inconsistency, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT employee_id, date, count
		FROM punch_inconsistencies
		WHERE employee_id = ANY($1)
			AND date >= $2
			AND date <= $3
		ORDER BY employee_id, date
	`
	rows, err := q.Query(ctx, query, employeeIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list inconsistency counters: %w", err)
	}
	defer rows.Close()

	return scanCounters(rows)
}

// AddCounters implements workentry.WorkEntryRepository.
func (w *workEntryRepositoryImpl) AddCounters(ctx context.Context, counters []workentry.Inconsistency) error {
	if len(counters) == 0 {
		return nil
	}
	q := GetQuerier(ctx, w.db)

	query := `
		INSERT INTO punch_inconsistencies (employee_id, date, count)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, date)
		DO UPDATE SET count = punch_inconsistencies.count + EXCLUDED.count, updated_at = NOW()
	`
	for _, c := range counters {
		if _, err := q.Exec(ctx, query, c.EmployeeID, c.Date, c.Count); err != nil {
			return fmt.Errorf("failed to add inconsistency counter: %w", err)
		}
	}
	return nil
}

// SaveRunResults implements workentry.WorkEntryRepository.
func (w *workEntryRepositoryImpl) SaveRunResults(ctx context.Context, entries []workentry.WorkEntry, counters []workentry.Inconsistency) error {
	return WithTransaction(ctx, w.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		if err := w.UpsertEntries(txCtx, entries); err != nil {
			return err
		}
		return w.AddCounters(txCtx, counters)
	})
}

// ListInconsistencies implements workentry.WorkEntryRepository.
func (w *workEntryRepositoryImpl) ListInconsistencies(ctx context.Context, filter workentry.ListFilter) ([]workentry.Inconsistency, int64, error) {
	q := GetQuerier(ctx, w.db)

	where := " WHERE 1=1"
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.EmployeeID != "" {
		where += " AND employee_id = " + arg(filter.EmployeeID)
	}
	if filter.From != nil {
		where += " AND date >= " + arg(*filter.From)
	}
	if filter.To != nil {
		where += " AND date <= " + arg(*filter.To)
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM punch_inconsistencies"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count inconsistencies: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := `
		SELECT employee_id, date, count
		FROM punch_inconsistencies` + where + `
		ORDER BY date DESC, employee_id
		LIMIT ` + arg(limit) + ` OFFSET ` + arg((page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inconsistencies: %w", err)
	}
	defer rows.Close()

	counters, err := scanCounters(rows)
	if err != nil {
		return nil, 0, err
	}
	return counters, total, nil
}

func scanCounters(rows pgx.Rows) ([]workentry.Inconsistency, error) {
	var counters []workentry.Inconsistency
	for rows.Next() {
		var c workentry.Inconsistency
		if err := rows.Scan(&c.EmployeeID, &c.Date, &c.Count); err != nil {
			return nil, err
		}
		counters = append(counters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counters, nil
}

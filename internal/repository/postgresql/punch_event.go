package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/andina-hr/timeclock-backend-go/internal/pkg/database"
)

type punchEventRepositoryImpl struct {
	db *database.DB
}

func NewPunchEventRepository(db *database.DB) punch.EventRepository {
	return &punchEventRepositoryImpl{db: db}
}

// CreateBatch implements punch.EventRepository. The whole batch inserts
// in one transaction so a failed file leaves nothing behind.
func (p *punchEventRepositoryImpl) CreateBatch(ctx context.Context, events []punch.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO punch_events (id, employee_id, punched_at, source_file)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, punched_at) DO NOTHING
	`

	inserted := 0
	err := WithTransaction(ctx, p.db, func(tx pgx.Tx) error {
		for _, ev := range events {
			tag, err := tx.Exec(ctx, query, ev.ID, ev.EmployeeID, ev.PunchedAt, ev.SourceFile)
			if err != nil {
				return fmt.Errorf("failed to insert punch event: %w", err)
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// ListForEmployees implements punch.EventRepository.
func (p *punchEventRepositoryImpl) ListForEmployees(ctx context.Context, employeeIDs []string, from, to time.Time) ([]punch.Event, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, employee_id, punched_at, source_file, created_at
		FROM punch_events
		WHERE employee_id = ANY($1)
			AND punched_at >= $2
			AND punched_at < $3
		ORDER BY employee_id, punched_at
	`
	rows, err := q.Query(ctx, query, employeeIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list punch events: %w", err)
	}
	defer rows.Close()

	var events []punch.Event
	for rows.Next() {
		var ev punch.Event
		if err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.PunchedAt, &ev.SourceFile, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

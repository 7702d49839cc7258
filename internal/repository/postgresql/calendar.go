package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/andina-hr/timeclock-backend-go/internal/pkg/database"
)

type calendarRepositoryImpl struct {
	db *database.DB
}

func NewCalendarRepository(db *database.DB) schedule.CalendarRepository {
	return &calendarRepositoryImpl{db: db}
}

// GetByID implements schedule.CalendarRepository.
func (c *calendarRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.Calendar, error) {
	cals, err := c.ListByIDs(ctx, []string{id})
	if err != nil {
		return schedule.Calendar{}, err
	}
	if len(cals) == 0 {
		return schedule.Calendar{}, schedule.ErrCalendarNotFound
	}
	return cals[0], nil
}

// ListByIDs implements schedule.CalendarRepository.
func (c *calendarRepositoryImpl) ListByIDs(ctx context.Context, ids []string) ([]schedule.Calendar, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, department, created_at, updated_at
		FROM calendars
		WHERE id = ANY($1)
		ORDER BY id
	`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}
	defer rows.Close()

	calendars, err := scanCalendars(rows)
	if err != nil {
		return nil, err
	}
	return c.attachRanges(ctx, calendars)
}

// ListByDepartment implements schedule.CalendarRepository.
func (c *calendarRepositoryImpl) ListByDepartment(ctx context.Context, department string) ([]schedule.Calendar, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, department, created_at, updated_at
		FROM calendars
		WHERE department = $1
		ORDER BY id
	`
	rows, err := q.Query(ctx, query, department)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars for department %s: %w", department, err)
	}
	defer rows.Close()

	calendars, err := scanCalendars(rows)
	if err != nil {
		return nil, err
	}
	return c.attachRanges(ctx, calendars)
}

func (c *calendarRepositoryImpl) attachRanges(ctx context.Context, calendars []schedule.Calendar) ([]schedule.Calendar, error) {
	if len(calendars) == 0 {
		return calendars, nil
	}
	q := GetQuerier(ctx, c.db)

	ids := make([]string, 0, len(calendars))
	index := make(map[string]int, len(calendars))
	for i, cal := range calendars {
		ids = append(ids, cal.ID)
		index[cal.ID] = i
	}

	query := `
		SELECT id, calendar_id, weekday, start_minutes, end_minutes
		FROM calendar_ranges
		WHERE calendar_id = ANY($1)
		ORDER BY calendar_id, weekday, start_minutes
	`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar ranges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r schedule.CalendarRange
		var weekday int
		if err := rows.Scan(&r.ID, &r.CalendarID, &weekday, &r.StartMinutes, &r.EndMinutes); err != nil {
			return nil, err
		}
		r.Weekday = time.Weekday(weekday)
		i := index[r.CalendarID]
		calendars[i].Ranges = append(calendars[i].Ranges, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return calendars, nil
}

func scanCalendars(rows pgx.Rows) ([]schedule.Calendar, error) {
	var calendars []schedule.Calendar
	for rows.Next() {
		var cal schedule.Calendar
		if err := rows.Scan(&cal.ID, &cal.Name, &cal.Department, &cal.CreatedAt, &cal.UpdatedAt); err != nil {
			return nil, err
		}
		calendars = append(calendars, cal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return calendars, nil
}

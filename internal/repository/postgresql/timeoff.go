package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/timeoff"
	"github.com/andina-hr/timeclock-backend-go/internal/pkg/database"
)

type timeOffRepositoryImpl struct {
	db *database.DB
}

func NewTimeOffRepository(db *database.DB) timeoff.TimeOffRepository {
	return &timeOffRepositoryImpl{db: db}
}

// ListHolidays implements timeoff.TimeOffRepository.
func (t *timeOffRepositoryImpl) ListHolidays(ctx context.Context, from, to time.Time) ([]timeoff.Holiday, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT id, scope, city, start_date, end_date
		FROM holidays
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY start_date, id
	`
	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []timeoff.Holiday
	for rows.Next() {
		var h timeoff.Holiday
		var scope string
		if err := rows.Scan(&h.ID, &scope, &h.City, &h.StartDate, &h.EndDate); err != nil {
			return nil, err
		}
		h.Scope = timeoff.HolidayScope(scope)
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return holidays, nil
}

// ListApprovedPeriods implements timeoff.TimeOffRepository.
func (t *timeOffRepositoryImpl) ListApprovedPeriods(ctx context.Context, employeeIDs []string, from, to time.Time) ([]timeoff.Period, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT id, employee_id, time_type, start_at, end_at, approved
		FROM time_off_periods
		WHERE employee_id = ANY($1)
			AND approved = TRUE
			AND start_at < $3
			AND end_at > $2
		ORDER BY employee_id, start_at
	`
	rows, err := q.Query(ctx, query, employeeIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list time off periods: %w", err)
	}
	defer rows.Close()

	var periods []timeoff.Period
	for rows.Next() {
		var p timeoff.Period
		var timeType string
		if err := rows.Scan(&p.ID, &p.EmployeeID, &timeType, &p.StartAt, &p.EndAt, &p.Approved); err != nil {
			return nil, err
		}
		p.TimeType = timeoff.TimeType(timeType)
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return periods, nil
}

// ListLactationPeriods implements timeoff.TimeOffRepository.
func (t *timeOffRepositoryImpl) ListLactationPeriods(ctx context.Context, employeeIDs []string, from, to time.Time) ([]timeoff.LactationPeriod, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT id, employee_id, start_date, end_date
		FROM lactation_periods
		WHERE employee_id = ANY($1)
			AND start_date <= $3
			AND end_date >= $2
		ORDER BY employee_id, start_date
	`
	rows, err := q.Query(ctx, query, employeeIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list lactation periods: %w", err)
	}
	defer rows.Close()

	var periods []timeoff.LactationPeriod
	for rows.Next() {
		var p timeoff.LactationPeriod
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.StartDate, &p.EndDate); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return periods, nil
}

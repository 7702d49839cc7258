package reconciliation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
	"github.com/andina-hr/timeclock-backend-go/internal/pkg/validator"
)

// RunRequest triggers one reconciliation batch over an explicit employee
// set and date range. An empty employee set means all active employees.
type RunRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
	DateFrom    string   `json:"date_from"`
	DateTo      string   `json:"date_to"`
}

func (r RunRequest) Validate() error {
	var errs validator.ValidationErrors
	from, okFrom := validator.IsValidDate(r.DateFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "date_from", Message: "must be a YYYY-MM-DD date"})
	}
	to, okTo := validator.IsValidDate(r.DateTo)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must be a YYYY-MM-DD date"})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "must not be before date_from"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AbsenceDay marks a scheduled day with zero punches and no holiday or
// leave coverage.
type AbsenceDay struct {
	EmployeeID string    `json:"employee_id"`
	Date       time.Time `json:"date"`
}

// RunReport is the full outcome of one reconciliation batch.
type RunReport struct {
	Entries            []workentry.WorkEntry
	Inconsistencies    []workentry.Inconsistency
	DroppedPunches     []workentry.Inconsistency // lone punches beyond the grace limit
	Absences           []AbsenceDay
	HourTotals         map[workentry.Category]decimal.Decimal
	EmployeesProcessed int
}

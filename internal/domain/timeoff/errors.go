package timeoff

import "errors"

var (
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrPeriodNotFound  = errors.New("time off period not found")
)

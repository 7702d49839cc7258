package reconciliation

import "errors"

var (
	ErrNoEmployees      = errors.New("no employees match the reconciliation request")
	ErrInvalidDateRange = errors.New("invalid reconciliation date range")
)

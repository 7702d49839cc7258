package workentry

import "errors"

var (
	ErrWorkEntryNotFound = errors.New("work entry not found")
	ErrInvalidCategory   = errors.New("invalid work entry category")
)

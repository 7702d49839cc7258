package punch

import "errors"

// Punch ingestion errors. Batch file failures are all-or-nothing: a single
// bad line fails the whole file before any record is stored.
var (
	ErrMalformedLine      = errors.New("malformed punch line")
	ErrUnsupportedArchive = errors.New("unsupported batch archive")
	ErrEmptyBatch         = errors.New("batch contains no punch lines")
)

package punch

import (
	"context"
	"io"
)

// ImportService ingests raw punch batch files.
type ImportService interface {
	// Import parses a terminal export (plain TSV or a zip of TSV files)
	// and stores the punches. All-or-nothing per file: a malformed line
	// fails the whole file with a line-identifying error.
	Import(ctx context.Context, filename string, r io.Reader, size int64) (ImportResult, error)
}

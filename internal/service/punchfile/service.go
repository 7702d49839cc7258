package punchfile

import (
	"archive/zip"
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/andina-hr/timeclock-backend-go/internal/pkg/validator"
)

// timestampLayouts are tried in order; the first that parses wins.
// Terminal exports are not consistent about date formats, and the
// day-first layouts are tried before the month-first one.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"2006/01/02 15:04:05",
	"02-01-2006 15:04:05",
	"01-02-2006 15:04:05",
}

type rawPunch struct {
	code string
	at   time.Time
	file string
}

type PunchImportServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	punchRepo    punch.EventRepository
	loc          *time.Location
	logger       *slog.Logger
}

func NewPunchImportService(
	employeeRepo employee.EmployeeRepository,
	punchRepo punch.EventRepository,
	loc *time.Location,
	logger *slog.Logger,
) punch.ImportService {
	return &PunchImportServiceImpl{
		employeeRepo: employeeRepo,
		punchRepo:    punchRepo,
		loc:          loc,
		logger:       logger,
	}
}

// Import implements punch.ImportService.
func (s *PunchImportServiceImpl) Import(ctx context.Context, filename string, r io.Reader, size int64) (punch.ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return punch.ImportResult{}, fmt.Errorf("failed to read batch file: %w", err)
	}

	var result punch.ImportResult
	var records []rawPunch

	if isZip(filename, data) {
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return punch.ImportResult{}, fmt.Errorf("%w: %s", punch.ErrUnsupportedArchive, filename)
		}
		for _, f := range zr.File {
			if f.FileInfo().IsDir() || strings.HasPrefix(path.Base(f.Name), ".") {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				return punch.ImportResult{}, fmt.Errorf("%w: %s", punch.ErrUnsupportedArchive, f.Name)
			}
			recs, lines, err := parseLines(f.Name, rc, s.loc)
			rc.Close()
			if err != nil {
				return punch.ImportResult{}, err
			}
			records = append(records, recs...)
			result.Files++
			result.Lines += lines
		}
	} else {
		recs, lines, err := parseLines(filename, bytes.NewReader(data), s.loc)
		if err != nil {
			return punch.ImportResult{}, err
		}
		records = recs
		result.Files = 1
		result.Lines = lines
	}

	if len(records) == 0 {
		return punch.ImportResult{}, punch.ErrEmptyBatch
	}

	events, err := s.resolveEmployees(ctx, records)
	if err != nil {
		return punch.ImportResult{}, err
	}

	inserted, err := s.punchRepo.CreateBatch(ctx, events)
	if err != nil {
		return punch.ImportResult{}, fmt.Errorf("failed to store punch events: %w", err)
	}
	result.Imported = inserted
	result.Duplicates = len(events) - inserted

	s.logger.Info("punch batch imported",
		slog.String("filename", filename),
		slog.Int("files", result.Files),
		slog.Int("imported", result.Imported),
		slog.Int("duplicates", result.Duplicates),
	)
	return result, nil
}

// resolveEmployees maps terminal codes to employee ids. An unknown code
// fails the whole batch.
func (s *PunchImportServiceImpl) resolveEmployees(ctx context.Context, records []rawPunch) ([]punch.Event, error) {
	codeSet := map[string]bool{}
	for _, rec := range records {
		codeSet[rec.code] = true
	}
	codes := make([]string, 0, len(codeSet))
	for code := range codeSet {
		codes = append(codes, code)
	}

	employees, err := s.employeeRepo.ListByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve terminal codes: %w", err)
	}
	byCode := make(map[string]employee.Employee, len(employees))
	for _, emp := range employees {
		byCode[emp.Code] = emp
	}

	events := make([]punch.Event, 0, len(records))
	for _, rec := range records {
		emp, ok := byCode[rec.code]
		if !ok {
			return nil, fmt.Errorf("%w: %s", employee.ErrUnknownTerminalCode, rec.code)
		}
		events = append(events, punch.Event{
			ID:         uuid.NewString(),
			EmployeeID: emp.ID,
			PunchedAt:  rec.at.UTC(),
			SourceFile: rec.file,
		})
	}
	return events, nil
}

// parseLines reads one tab-separated export: terminal code, timestamp,
// optionally trailing device columns which are ignored. Blank lines are
// skipped; anything else malformed fails the file.
func parseLines(name string, r io.Reader, loc *time.Location) ([]rawPunch, int, error) {
	var records []rawPunch
	lines := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines++

		fields := splitFields(line)
		if len(fields) < 2 {
			return nil, 0, fmt.Errorf("%w: %s line %d", punch.ErrMalformedLine, name, lineNo)
		}
		code := strings.TrimSpace(fields[0])
		if !validator.IsValidTerminalCode(code) {
			return nil, 0, fmt.Errorf("%w: %s line %d: bad terminal code %q", punch.ErrMalformedLine, name, lineNo, code)
		}
		at, err := parseTimestamp(strings.TrimSpace(fields[1]), loc)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s line %d: %v", punch.ErrMalformedLine, name, lineNo, err)
		}
		records = append(records, rawPunch{code: code, at: at, file: path.Base(name)})
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return records, lines, nil
}

// splitFields splits a line on tabs, falling back to runs of two or more
// spaces for exports that pad columns instead.
func splitFields(line string) []string {
	if strings.Contains(line, "\t") {
		return strings.Split(line, "\t")
	}
	parts := strings.SplitN(line, "  ", 2)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseTimestamp(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}

func isZip(filename string, data []byte) bool {
	if strings.EqualFold(path.Ext(filename), ".zip") {
		return true
	}
	return len(data) >= 4 && bytes.Equal(data[:4], []byte("PK\x03\x04"))
}

package punchfile

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/punch"
)

var testLoc = time.FixedZone("UTC-05:00", -5*3600)

func TestParseLinesTabSeparated(t *testing.T) {
	input := "1001\t2026-03-02 08:00:00\n1001\t2026-03-02 17:00:00\n"

	records, lines, err := parseLines("batch.txt", strings.NewReader(input), testLoc)

	require.NoError(t, err)
	assert.Equal(t, 2, lines)
	require.Len(t, records, 2)
	assert.Equal(t, "1001", records[0].code)
	assert.Equal(t, time.Date(2026, time.March, 2, 8, 0, 0, 0, testLoc), records[0].at)
	assert.Equal(t, "batch.txt", records[0].file)
}

func TestParseLinesAcceptsAlternateTimestampLayouts(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2026-03-02 08:00:00", time.Date(2026, time.March, 2, 8, 0, 0, 0, testLoc)},
		{"02/03/2026 08:00:00", time.Date(2026, time.March, 2, 8, 0, 0, 0, testLoc)},
		{"2026/03/02 08:00:00", time.Date(2026, time.March, 2, 8, 0, 0, 0, testLoc)},
	}

	for _, tc := range cases {
		records, _, err := parseLines("batch.txt", strings.NewReader("42\t"+tc.raw+"\n"), testLoc)
		require.NoError(t, err, tc.raw)
		require.Len(t, records, 1)
		assert.True(t, tc.want.Equal(records[0].at), tc.raw)
	}
}

func TestParseLinesSkipsBlankLines(t *testing.T) {
	input := "\n1001\t2026-03-02 08:00:00\n\n\n"

	records, lines, err := parseLines("batch.txt", strings.NewReader(input), testLoc)

	require.NoError(t, err)
	assert.Equal(t, 1, lines)
	assert.Len(t, records, 1)
}

func TestParseLinesMalformedTimestampFailsWithLine(t *testing.T) {
	input := "1001\t2026-03-02 08:00:00\n1001\tnot-a-time\n"

	_, _, err := parseLines("batch.txt", strings.NewReader(input), testLoc)

	require.Error(t, err)
	assert.ErrorIs(t, err, punch.ErrMalformedLine)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseLinesBadTerminalCodeFails(t *testing.T) {
	input := "not-numeric\t2026-03-02 08:00:00\n"

	_, _, err := parseLines("batch.txt", strings.NewReader(input), testLoc)

	assert.ErrorIs(t, err, punch.ErrMalformedLine)
}

func TestParseLinesMissingColumnFails(t *testing.T) {
	_, _, err := parseLines("batch.txt", strings.NewReader("1001\n"), testLoc)

	assert.ErrorIs(t, err, punch.ErrMalformedLine)
}

func TestIsZipByExtensionAndMagic(t *testing.T) {
	assert.True(t, isZip("batch.ZIP", nil))
	assert.True(t, isZip("batch.dat", []byte("PK\x03\x04rest")))
	assert.False(t, isZip("batch.txt", []byte("1001\t2026")))
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	byCode map[string]employee.Employee
}

func (f *fakeEmployeeRepo) ListByCodes(ctx context.Context, codes []string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, code := range codes {
		if emp, ok := f.byCode[code]; ok {
			out = append(out, emp)
		}
	}
	return out, nil
}

type fakePunchRepo struct {
	punch.EventRepository
	created []punch.Event
	dupes   int
}

func (f *fakePunchRepo) CreateBatch(ctx context.Context, events []punch.Event) (int, error) {
	f.created = append(f.created, events...)
	return len(events) - f.dupes, nil
}

func newTestService(empRepo employee.EmployeeRepository, punchRepo punch.EventRepository) punch.ImportService {
	return NewPunchImportService(empRepo, punchRepo, testLoc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestImportPlainFile(t *testing.T) {
	empRepo := &fakeEmployeeRepo{byCode: map[string]employee.Employee{
		"1001": {ID: "emp-1", Code: "1001"},
	}}
	punchRepo := &fakePunchRepo{}
	svc := newTestService(empRepo, punchRepo)

	input := "1001\t2026-03-02 08:00:00\n1001\t2026-03-02 17:00:00\n"
	result, err := svc.Import(context.Background(), "batch.txt", strings.NewReader(input), int64(len(input)))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Files)
	assert.Equal(t, 2, result.Lines)
	assert.Equal(t, 2, result.Imported)
	assert.Zero(t, result.Duplicates)

	require.Len(t, punchRepo.created, 2)
	assert.Equal(t, "emp-1", punchRepo.created[0].EmployeeID)
	// stored as a UTC instant
	assert.Equal(t, time.Date(2026, time.March, 2, 13, 0, 0, 0, time.UTC), punchRepo.created[0].PunchedAt)
	assert.NotEmpty(t, punchRepo.created[0].ID)
}

func TestImportZipArchive(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"day1.txt", "day2.txt"} {
		f, err := zw.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte("1001\t2026-03-02 08:00:00\n"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	empRepo := &fakeEmployeeRepo{byCode: map[string]employee.Employee{
		"1001": {ID: "emp-1", Code: "1001"},
	}}
	punchRepo := &fakePunchRepo{}
	svc := newTestService(empRepo, punchRepo)

	result, err := svc.Import(context.Background(), "week.zip", &buf, int64(buf.Len()))

	require.NoError(t, err)
	assert.Equal(t, 2, result.Files)
	assert.Equal(t, 2, result.Lines)
	assert.Equal(t, 2, result.Imported)
}

func TestImportUnknownTerminalCodeFailsBatch(t *testing.T) {
	empRepo := &fakeEmployeeRepo{byCode: map[string]employee.Employee{}}
	punchRepo := &fakePunchRepo{}
	svc := newTestService(empRepo, punchRepo)

	input := "9999\t2026-03-02 08:00:00\n"
	_, err := svc.Import(context.Background(), "batch.txt", strings.NewReader(input), int64(len(input)))

	require.Error(t, err)
	assert.ErrorIs(t, err, employee.ErrUnknownTerminalCode)
	assert.Empty(t, punchRepo.created)
}

func TestImportEmptyBatchFails(t *testing.T) {
	svc := newTestService(&fakeEmployeeRepo{}, &fakePunchRepo{})

	_, err := svc.Import(context.Background(), "batch.txt", strings.NewReader("\n\n"), 2)

	assert.ErrorIs(t, err, punch.ErrEmptyBatch)
}

func TestImportReportsDuplicates(t *testing.T) {
	empRepo := &fakeEmployeeRepo{byCode: map[string]employee.Employee{
		"1001": {ID: "emp-1", Code: "1001"},
	}}
	punchRepo := &fakePunchRepo{dupes: 1}
	svc := newTestService(empRepo, punchRepo)

	input := "1001\t2026-03-02 08:00:00\n1001\t2026-03-02 08:00:00\n"
	result, err := svc.Import(context.Background(), "batch.txt", strings.NewReader(input), int64(len(input)))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Duplicates)
}

package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListFilterReadsDateParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/work-entries?employee_id=e1&category=attendance&date_from=2026-03-02&date_to=2026-03-08&page=2&limit=100", nil)

	filter, err := parseListFilter(r)

	require.NoError(t, err)
	assert.Equal(t, "e1", filter.EmployeeID)
	assert.Equal(t, "attendance", filter.Category)
	assert.Equal(t, 2, filter.Page)
	assert.Equal(t, 100, filter.Limit)
	require.NotNil(t, filter.From)
	require.NotNil(t, filter.To)
	assert.Equal(t, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), *filter.From)
	assert.Equal(t, time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC), *filter.To)
}

func TestParseListFilterDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/work-entries", nil)

	filter, err := parseListFilter(r)

	require.NoError(t, err)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 50, filter.Limit)
	assert.Nil(t, filter.From)
	assert.Nil(t, filter.To)
}

func TestParseListFilterRejectsMalformedDate(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/work-entries?date_from=02%2F03%2F2026", nil)

	_, err := parseListFilter(r)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "date_from")
}

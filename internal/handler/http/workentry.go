package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
	"github.com/andina-hr/timeclock-backend-go/internal/handler/http/response"
)

type WorkEntryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListInconsistencies(w http.ResponseWriter, r *http.Request)
}

type WorkEntryHandlerImpl struct {
	workEntryRepo workentry.WorkEntryRepository
}

func NewWorkEntryHandler(workEntryRepo workentry.WorkEntryRepository) WorkEntryHandler {
	return &WorkEntryHandlerImpl{workEntryRepo: workEntryRepo}
}

// List implements WorkEntryHandler.
func (h *WorkEntryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	entries, total, err := h.workEntryRepo.List(r.Context(), filter)
	if err != nil {
		slog.Error("List work entries error", "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]workentry.WorkEntryResponse, 0, len(entries))
	for _, e := range entries {
		minutes := decimal.NewFromInt(int64(e.EndAt.Sub(e.StartAt) / time.Minute))
		out = append(out, workentry.WorkEntryResponse{
			ID:         e.ID,
			EmployeeID: e.EmployeeID,
			StartAt:    e.StartAt.Format(time.RFC3339),
			EndAt:      e.EndAt.Format(time.RFC3339),
			Category:   string(e.Category),
			Hours:      minutes.DivRound(decimal.NewFromInt(60), 2).StringFixed(2),
		})
	}

	response.SuccessWithMeta(w, out, listMeta(filter, total))
}

// ListInconsistencies implements WorkEntryHandler.
func (h *WorkEntryHandlerImpl) ListInconsistencies(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	counters, total, err := h.workEntryRepo.ListInconsistencies(r.Context(), filter)
	if err != nil {
		slog.Error("List inconsistencies error", "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]workentry.InconsistencyResponse, 0, len(counters))
	for _, c := range counters {
		out = append(out, workentry.InconsistencyResponse{
			EmployeeID: c.EmployeeID,
			Date:       c.Date.Format("2006-01-02"),
			Count:      c.Count,
		})
	}

	response.SuccessWithMeta(w, out, listMeta(filter, total))
}

func listMeta(filter workentry.ListFilter, total int64) *response.Meta {
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

func parseListFilter(r *http.Request) (workentry.ListFilter, error) {
	q := r.URL.Query()
	filter := workentry.ListFilter{
		EmployeeID: q.Get("employee_id"),
		Category:   q.Get("category"),
		Page:       1,
		Limit:      50,
	}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return filter, errInvalidQuery("page")
		}
		filter.Page = page
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > 500 {
			return filter, errInvalidQuery("limit")
		}
		filter.Limit = limit
	}
	if v := q.Get("date_from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errInvalidQuery("date_from")
		}
		filter.From = &from
	}
	if v := q.Get("date_to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errInvalidQuery("date_to")
		}
		filter.To = &to
	}
	return filter, nil
}

type queryError string

func errInvalidQuery(field string) error {
	return queryError("invalid query parameter " + field)
}

func (e queryError) Error() string {
	return string(e)
}

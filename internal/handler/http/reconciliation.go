package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/reconciliation"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/workentry"
	"github.com/andina-hr/timeclock-backend-go/internal/handler/http/response"
)

type ReconciliationHandler interface {
	Run(w http.ResponseWriter, r *http.Request)
	ResolveSchedule(w http.ResponseWriter, r *http.Request)
}

type ReconciliationHandlerImpl struct {
	reconcileService reconciliation.Service
}

func NewReconciliationHandler(reconcileService reconciliation.Service) ReconciliationHandler {
	return &ReconciliationHandlerImpl{reconcileService: reconcileService}
}

type runReportResponse struct {
	EmployeesProcessed int                         `json:"employees_processed"`
	Entries            int                         `json:"entries"`
	Autocompleted      []workentry.Inconsistency   `json:"autocompleted,omitempty"`
	DroppedPunches     []workentry.Inconsistency   `json:"dropped_punches,omitempty"`
	Absences           []reconciliation.AbsenceDay `json:"absences,omitempty"`
	HourTotals         map[string]string           `json:"hour_totals"`
}

// Run implements ReconciliationHandler.
func (h *ReconciliationHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	var runReq reconciliation.RunRequest

	if err := json.NewDecoder(r.Body).Decode(&runReq); err != nil {
		slog.Error("Run decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := runReq.Validate(); err != nil {
		slog.Error("Run validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	report, err := h.reconcileService.Run(r.Context(), runReq)
	if err != nil {
		slog.Error("Run service error", "error", err)
		response.HandleError(w, err)
		return
	}

	totals := make(map[string]string, len(report.HourTotals))
	for cat, hours := range report.HourTotals {
		totals[string(cat)] = hours.StringFixed(2)
	}
	for _, cat := range workentry.CategoryValues {
		if _, ok := totals[cat]; !ok {
			totals[cat] = decimal.Zero.StringFixed(2)
		}
	}

	response.Success(w, runReportResponse{
		EmployeesProcessed: report.EmployeesProcessed,
		Entries:            len(report.Entries),
		Autocompleted:      report.Inconsistencies,
		DroppedPunches:     report.DroppedPunches,
		Absences:           report.Absences,
		HourTotals:         totals,
	})
}

type scheduleRangeResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	IsSpecial bool   `json:"is_special"`
}

type dayScheduleResponse struct {
	EmployeeID string                  `json:"employee_id"`
	Date       string                  `json:"date"`
	Source     string                  `json:"source"`
	Ranges     []scheduleRangeResponse `json:"ranges"`
}

// ResolveSchedule implements ReconciliationHandler. Answers which schedule
// applies to one employee on one date and where it came from.
func (h *ReconciliationHandlerImpl) ResolveSchedule(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		response.BadRequest(w, "Query parameter date must be a YYYY-MM-DD date", nil)
		return
	}

	day, err := h.reconcileService.ResolveSchedule(r.Context(), employeeID, date)
	if err != nil {
		slog.Error("ResolveSchedule service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, toDayScheduleResponse(day))
}

func toDayScheduleResponse(day schedule.DaySchedule) dayScheduleResponse {
	resp := dayScheduleResponse{
		EmployeeID: day.EmployeeID,
		Date:       day.Date.Format("2006-01-02"),
		Source:     string(day.Source),
		Ranges:     []scheduleRangeResponse{},
	}
	for _, rng := range day.Ranges {
		resp.Ranges = append(resp.Ranges, scheduleRangeResponse{
			Start:     rng.Start.Format(time.RFC3339),
			End:       rng.End.Format(time.RFC3339),
			IsSpecial: rng.IsSpecial,
		})
	}
	return resp
}

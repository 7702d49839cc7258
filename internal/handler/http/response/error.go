package response

import (
	"errors"
	"net/http"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/auth"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/reconciliation"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/user"
	"github.com/andina-hr/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUnknownTerminalCode):
		BadRequest(w, err.Error(), nil)

	// Punch ingestion errors
	case errors.Is(err, punch.ErrMalformedLine),
		errors.Is(err, punch.ErrUnsupportedArchive),
		errors.Is(err, punch.ErrEmptyBatch):
		BadRequest(w, err.Error(), nil)

	// Schedule domain errors
	case errors.Is(err, schedule.ErrCalendarNotFound):
		NotFound(w, "Calendar not found")
	case errors.Is(err, schedule.ErrNoScheduleForDate):
		NotFound(w, "No schedule resolves for the requested date")

	// Reconciliation errors
	case errors.Is(err, reconciliation.ErrNoEmployees),
		errors.Is(err, reconciliation.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

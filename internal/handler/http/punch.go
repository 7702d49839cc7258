package http

import (
	"log/slog"
	"net/http"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/andina-hr/timeclock-backend-go/internal/handler/http/response"
)

// maxBatchSize bounds one multipart upload, zip included.
const maxBatchSize = 32 << 20

type PunchHandler interface {
	Import(w http.ResponseWriter, r *http.Request)
}

type PunchHandlerImpl struct {
	importService punch.ImportService
}

func NewPunchHandler(importService punch.ImportService) PunchHandler {
	return &PunchHandlerImpl{importService: importService}
}

// Import implements PunchHandler. Accepts one multipart file field named
// "file": a terminal TSV export or a zip of them.
func (p *PunchHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxBatchSize); err != nil {
		slog.Error("Import parse multipart error", "error", err)
		response.BadRequest(w, "Invalid multipart request", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file field", nil)
		return
	}
	defer file.Close()

	result, err := p.importService.Import(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		slog.Error("Import service error", "error", err, "filename", header.Filename)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch batch imported", result)
}

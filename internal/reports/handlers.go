package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Handler содержит HTTP обработчики для отчётов
type Handler struct {
	service *Service
}

// NewHandler создаёт новый handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleCreate обрабатывает POST /v1/athletes/{id}/reports
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	athleteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_id", "Invalid athlete ID")
		return
	}

	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_json", "Invalid JSON")
		return
	}
	req.AthleteID = athleteID

	resp, err := h.service.CreateReport(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidFormat):
			h.sendError(w, http.StatusBadRequest, "invalid_format", "Format must be pdf or csv")
		case errors.Is(err, ErrTooManyActivities):
			h.sendError(w, http.StatusUnprocessableEntity, "too_many_activities", "Too many activities to report on")
		default:
			h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to create report")
		}
		return
	}

	h.sendJSON(w, http.StatusCreated, resp)
}

// HandleList обрабатывает GET /v1/athletes/{id}/reports
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	athleteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_id", "Invalid athlete ID")
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxListLimit {
			h.sendError(w, http.StatusBadRequest, "invalid_limit", "Limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.sendError(w, http.StatusBadRequest, "invalid_offset", "Offset must be non-negative")
			return
		}
		offset = parsed
	}

	resp, err := h.service.ListReports(r.Context(), athleteID, limit, offset)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to list reports")
		return
	}

	h.sendJSON(w, http.StatusOK, resp)
}

// HandleDownload обрабатывает GET /v1/reports/{id}/download
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid_id", "Invalid report ID")
		return
	}

	data, contentType, redirectURL, err := h.service.Download(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			h.sendError(w, http.StatusNotFound, "not_found", "Report not found")
			return
		}
		h.sendError(w, http.StatusInternalServerError, "internal_error", "Failed to download report")
		return
	}

	if redirectURL != "" {
		http.Redirect(w, r, redirectURL, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// sendJSON отправляет JSON ответ
func (h *Handler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError отправляет ошибку в формате ErrorResponse
func (h *Handler) sendError(w http.ResponseWriter, status int, code, message string) {
	h.sendJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

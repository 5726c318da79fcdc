package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kintai-dev/kintai-backend-go/internal/domain/timeclock"
	"github.com/kintai-dev/kintai-backend-go/internal/handler/http/response"
)

type TimeclockHandler interface {
	RecordEvent(w http.ResponseWriter, r *http.Request)
	GetTodayStatus(w http.ResponseWriter, r *http.Request)
	GetMyEvents(w http.ResponseWriter, r *http.Request)
	GetMonthlyReport(w http.ResponseWriter, r *http.Request)
	UpdateEvent(w http.ResponseWriter, r *http.Request)
}

type timeclockHandlerImpl struct {
	timeclockService timeclock.TimeclockService
}

func NewTimeclockHandler(timeclockService timeclock.TimeclockService) TimeclockHandler {
	return &timeclockHandlerImpl{
		timeclockService: timeclockService,
	}
}

// RecordEvent implements TimeclockHandler.
func (h *timeclockHandlerImpl) RecordEvent(w http.ResponseWriter, r *http.Request) {
	var req timeclock.RecordEventRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordEvent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.timeclockService.RecordEvent(r.Context(), req)
	if err != nil {
		slog.Error("RecordEvent service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance event recorded", created)
}

// GetTodayStatus implements TimeclockHandler.
func (h *timeclockHandlerImpl) GetTodayStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.timeclockService.GetTodayStatus(r.Context())
	if err != nil {
		slog.Error("GetTodayStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// GetMyEvents implements TimeclockHandler.
func (h *timeclockHandlerImpl) GetMyEvents(w http.ResponseWriter, r *http.Request) {
	localDate := r.URL.Query().Get("date")

	events, err := h.timeclockService.GetMyEvents(r.Context(), localDate)
	if err != nil {
		slog.Error("GetMyEvents service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}

// GetMonthlyReport implements TimeclockHandler.
func (h *timeclockHandlerImpl) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		response.BadRequest(w, "year must be an integer", nil)
		return
	}
	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		response.BadRequest(w, "month must be an integer", nil)
		return
	}

	req := timeclock.MonthlyReportRequest{
		UserID: query.Get("user_id"),
		Year:   year,
		Month:  month,
	}

	report, err := h.timeclockService.GetMonthlyReport(r.Context(), req)
	if err != nil {
		slog.Error("GetMonthlyReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// UpdateEvent implements TimeclockHandler.
func (h *timeclockHandlerImpl) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req timeclock.UpdateEventRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateEvent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.timeclockService.UpdateEvent(r.Context(), req)
	if err != nil {
		slog.Error("UpdateEvent service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance event updated", updated)
}

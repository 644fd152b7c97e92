package export_technician_day

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	exportTechnicianDay "github.com/m04kA/SMC-CalendarService/internal/usecase/export_technician_day"
)

const (
	msgInvalidTechnicianID = "некорректный ID мастера"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTechnicianNotFound  = "мастер не найден"
)

type Handler struct {
	useCase ExportTechnicianDayUseCase
	logger  Logger
}

func NewHandler(useCase ExportTechnicianDayUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/technicians/{technicianId}/calendar.ics?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	technicianID, err := strconv.ParseInt(mux.Vars(r)["technicianId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /technicians/{id}/calendar.ics - Invalid technician ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTechnicianID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &exportTechnicianDay.Request{TechnicianID: technicianID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, exportTechnicianDay.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidTechnicianID)
		case errors.Is(err, exportTechnicianDay.ErrTechnicianNotFound):
			handlers.RespondNotFound(w, msgTechnicianNotFound)
		default:
			h.logger.Error("GET /technicians/{id}/calendar.ics - Failed to export: technician_id=%d, error=%v", technicianID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result.Body))
}

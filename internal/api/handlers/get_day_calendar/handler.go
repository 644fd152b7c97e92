package get_day_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	getDayCalendar "github.com/m04kA/SMC-CalendarService/internal/usecase/get_day_calendar"
)

const (
	msgInvalidLocationID = "некорректный ID салона"
	msgInvalidParams     = "некорректные параметры запроса, ожидается date=YYYY-MM-DD"
	msgInvalidHours      = "некорректный диапазон часов"
)

type Handler struct {
	useCase GetDayCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetDayCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/calendar
// Query params: date, technicianIds, startHour, endHour
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := strconv.ParseInt(mux.Vars(r)["locationId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /locations/{id}/calendar - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	req, err := ToUseCaseRequest(locationID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /locations/{id}/calendar - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getDayCalendar.ErrInvalidHours):
			handlers.RespondBadRequest(w, msgInvalidHours)
		case errors.Is(err, getDayCalendar.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)
		default:
			h.logger.Error("GET /locations/{id}/calendar - Failed to build calendar: location_id=%d, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

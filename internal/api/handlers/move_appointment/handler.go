package move_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	moveAppointment "github.com/m04kA/SMC-CalendarService/internal/usecase/move_appointment"
)

const (
	msgInvalidAppointmentID  = "некорректный ID записи"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidTime           = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidInput          = "некорректные параметры переноса"
	msgAppointmentNotFound   = "запись не найдена"
	msgAppointmentNotMovable = "запись в текущем статусе нельзя перенести"
	msgTechnicianNotFound    = "мастер не найден"
	msgTechnicianUnavailable = "мастер недоступен в этом салоне"
)

type Handler struct {
	useCase MoveAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase MoveAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/move - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req MoveAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/move - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, moveAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, moveAppointment.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, moveAppointment.ErrTechnicianNotFound):
			handlers.RespondNotFound(w, msgTechnicianNotFound)
		case errors.Is(err, moveAppointment.ErrAppointmentNotMovable):
			handlers.RespondConflict(w, msgAppointmentNotMovable)
		case errors.Is(err, moveAppointment.ErrTechnicianUnavailable):
			handlers.RespondConflict(w, msgTechnicianUnavailable)
		default:
			h.logger.Error("PATCH /appointments/{id}/move - Failed to move appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/move - Appointment moved: appointment_id=%d, technician_id=%d, conflicts=%d",
		appointmentID, result.Appointment.TechnicianID, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package create_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	createBlock "github.com/m04kA/SMC-CalendarService/internal/usecase/create_block"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidInput       = "некорректные параметры блока"
	msgInvalidRecurrence  = "некорректное правило повторения"
	msgTechnicianNotFound = "мастер не найден"
	msgTechnicianInactive = "мастер неактивен"
)

type Handler struct {
	useCase CreateBlockUseCase
	logger  Logger
}

func NewHandler(useCase CreateBlockUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /blocks - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBlock.ErrInvalidRecurrence):
			handlers.RespondBadRequest(w, msgInvalidRecurrence)
		case errors.Is(err, createBlock.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, createBlock.ErrTechnicianNotFound):
			handlers.RespondNotFound(w, msgTechnicianNotFound)
		case errors.Is(err, createBlock.ErrTechnicianInactive):
			handlers.RespondConflict(w, msgTechnicianInactive)
		default:
			h.logger.Error("POST /blocks - Failed to create block: technician_id=%d, error=%v", req.TechnicianID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blocks - Block created: block_id=%d, technician_id=%d", result.Block.ID, result.Block.TechnicianID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewBlockResponse(result.Block, result.Conflicts))
}

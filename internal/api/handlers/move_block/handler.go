package move_block

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	moveBlock "github.com/m04kA/SMC-CalendarService/internal/usecase/move_block"
)

const (
	msgInvalidBlockID        = "некорректный ID блока"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidTime           = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidInput          = "некорректные параметры переноса"
	msgBlockNotFound         = "блок не найден"
	msgRecurringBlock        = "повторяющийся блок нельзя перенести"
	msgTechnicianNotFound    = "мастер не найден"
	msgTechnicianUnavailable = "мастер недоступен в этом салоне"
)

type Handler struct {
	useCase MoveBlockUseCase
	logger  Logger
}

func NewHandler(useCase MoveBlockUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/blocks/{blockId}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	blockID, err := strconv.ParseInt(mux.Vars(r)["blockId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /blocks/{id}/move - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	var req MoveBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /blocks/{id}/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(blockID)
	if err != nil {
		h.logger.Warn("PATCH /blocks/{id}/move - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, moveBlock.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, moveBlock.ErrBlockNotFound):
			handlers.RespondNotFound(w, msgBlockNotFound)
		case errors.Is(err, moveBlock.ErrTechnicianNotFound):
			handlers.RespondNotFound(w, msgTechnicianNotFound)
		case errors.Is(err, moveBlock.ErrRecurringBlock):
			handlers.RespondConflict(w, msgRecurringBlock)
		case errors.Is(err, moveBlock.ErrTechnicianUnavailable):
			handlers.RespondConflict(w, msgTechnicianUnavailable)
		default:
			h.logger.Error("PATCH /blocks/{id}/move - Failed to move block: block_id=%d, error=%v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /blocks/{id}/move - Block moved: block_id=%d, technician_id=%d", blockID, result.Block.TechnicianID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBlockResponse(result.Block, result.Conflicts))
}

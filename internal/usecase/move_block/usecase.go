package move_block

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	blockRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/block"
	technicianRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/technician"
)

// UseCase use case переноса блока личного времени
type UseCase struct {
	blockRepo      BlockRepository
	technicianRepo TechnicianRepository
	conflicts      ConflictFinder
	txManager      TransactionManager
	metrics        MoveRecorder
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	blockRepo BlockRepository,
	technicianRepo TechnicianRepository,
	conflicts ConflictFinder,
	txManager TransactionManager,
	metrics MoveRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		blockRepo:      blockRepo,
		technicianRepo: technicianRepo,
		conflicts:      conflicts,
		txManager:      txManager,
		metrics:        metrics,
		logger:         logger,
	}
}

// Execute переносит блок к мастеру на новое время. Подтверждения не требует
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MoveBlock: block=%d, technician=%d, start=%s, end=%s",
		req.BlockID, req.TechnicianID, req.StartTime.Format("2006-01-02 15:04"), req.EndTime.Format("15:04"))

	kind := domain.KindBlock.String()

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MoveBlock: validation failed: %v", err)
		uc.metrics.RecordMove(kind, "rejected")
		return nil, err
	}

	var (
		moved       *domain.TechnicianBlock
		conflictIDs []domain.EventRef
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		block, err := uc.blockRepo.GetByID(txCtx, req.BlockID)
		if err != nil {
			if errors.Is(err, blockRepo.ErrBlockNotFound) {
				uc.logger.Warn("MoveBlock: block id=%d not found", req.BlockID)
				return ErrBlockNotFound
			}
			uc.logger.Error("MoveBlock: failed to get block id=%d: %v", req.BlockID, err)
			return fmt.Errorf("%w: failed to get block: %v", ErrInternal, err)
		}
		if !block.IsActive {
			uc.logger.Warn("MoveBlock: block id=%d is inactive", block.ID)
			return ErrBlockNotFound
		}
		if block.IsRecurring() {
			uc.logger.Warn("MoveBlock: block id=%d is recurring (%s)", block.ID, *block.RecurrenceRule)
			return ErrRecurringBlock
		}

		if err := uc.checkTechnician(txCtx, block.TechnicianID, req.TechnicianID); err != nil {
			return err
		}

		candidate := domain.FromBlock(block)
		candidate.TechnicianID = req.TechnicianID
		candidate.Start = req.StartTime
		candidate.End = req.EndTime

		conflictIDs, err = uc.conflicts.Conflicts(txCtx, candidate)
		if err != nil {
			uc.logger.Error("MoveBlock: failed to check conflicts: %v", err)
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}

		if err := uc.blockRepo.Reschedule(txCtx, block.ID, req.TechnicianID, req.StartTime, req.EndTime); err != nil {
			if errors.Is(err, blockRepo.ErrBlockNotFound) {
				return ErrBlockNotFound
			}
			uc.logger.Error("MoveBlock: failed to reschedule block id=%d: %v", block.ID, err)
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}

		block.TechnicianID = req.TechnicianID
		block.StartTime = req.StartTime
		block.EndTime = req.EndTime
		moved = block
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.metrics.RecordMove(kind, "error")
		} else {
			uc.metrics.RecordMove(kind, "rejected")
		}
		return nil, err
	}
	uc.metrics.RecordMove(kind, "ok")

	uc.logger.Info("MoveBlock: block id=%d moved to technician=%d at %s, conflicts=%d",
		moved.ID, moved.TechnicianID, moved.StartTime.Format("2006-01-02 15:04"), len(conflictIDs))

	return &Response{Block: moved, Conflicts: conflictIDs}, nil
}

// checkTechnician проверяет, что новый мастер активен и работает в салоне текущего
func (uc *UseCase) checkTechnician(ctx context.Context, currentID, targetID int64) error {
	target, err := uc.technicianRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, technicianRepo.ErrTechnicianNotFound) {
			uc.logger.Warn("MoveBlock: technician id=%d not found", targetID)
			return ErrTechnicianNotFound
		}
		return fmt.Errorf("%w: failed to get technician: %v", ErrInternal, err)
	}
	if !target.IsActive {
		return ErrTechnicianUnavailable
	}
	if currentID == targetID {
		return nil
	}

	current, err := uc.technicianRepo.GetByID(ctx, currentID)
	if err != nil {
		return fmt.Errorf("%w: failed to get current technician: %v", ErrInternal, err)
	}
	if current.LocationID != target.LocationID {
		uc.logger.Warn("MoveBlock: technicians %d and %d work at different locations", currentID, targetID)
		return ErrTechnicianUnavailable
	}
	return nil
}

package create_block

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	technicianRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/technician"
)

// UseCase use case создания блока личного времени
type UseCase struct {
	blockRepo      BlockRepository
	technicianRepo TechnicianRepository
	conflicts      ConflictFinder
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	blockRepo BlockRepository,
	technicianRepo TechnicianRepository,
	conflicts ConflictFinder,
	logger Logger,
) *UseCase {
	return &UseCase{
		blockRepo:      blockRepo,
		technicianRepo: technicianRepo,
		conflicts:      conflicts,
		logger:         logger,
	}
}

// Execute создает блок на выделенном диапазоне
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBlock: technician=%d, title=%q, start=%s, end=%s",
		req.TechnicianID, req.Title, req.StartTime.Format("2006-01-02 15:04"), req.EndTime.Format("15:04"))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBlock: validation failed: %v", err)
		return nil, err
	}

	technician, err := uc.technicianRepo.GetByID(ctx, req.TechnicianID)
	if err != nil {
		if errors.Is(err, technicianRepo.ErrTechnicianNotFound) {
			uc.logger.Warn("CreateBlock: technician id=%d not found", req.TechnicianID)
			return nil, ErrTechnicianNotFound
		}
		uc.logger.Error("CreateBlock: failed to get technician id=%d: %v", req.TechnicianID, err)
		return nil, fmt.Errorf("%w: failed to get technician: %v", ErrInternal, err)
	}
	if !technician.IsActive {
		return nil, ErrTechnicianInactive
	}

	blockType, _ := parseBlockType(req.BlockType)
	block := &domain.TechnicianBlock{
		TechnicianID: req.TechnicianID,
		Title:        strings.TrimSpace(req.Title),
		BlockType:    blockType,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		IsActive:     true,
	}
	if req.RecurrenceRule != nil && strings.TrimSpace(*req.RecurrenceRule) != "" {
		rule := strings.TrimSpace(*req.RecurrenceRule)
		block.RecurrenceRule = &rule
	}

	conflictIDs, err := uc.conflicts.Conflicts(ctx, domain.FromBlock(block))
	if err != nil {
		uc.logger.Error("CreateBlock: failed to check conflicts: %v", err)
		return nil, fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
	}

	created, err := uc.blockRepo.Create(ctx, block)
	if err != nil {
		uc.logger.Error("CreateBlock: failed to create block: %v", err)
		return nil, fmt.Errorf("%w: failed to create block: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBlock: block id=%d created for technician=%d, conflicts=%d",
		created.ID, created.TechnicianID, len(conflictIDs))

	return &Response{Block: created, Conflicts: conflictIDs}, nil
}

package move_block

import (
	"time"

	moveBlock "github.com/m04kA/SMC-CalendarService/internal/usecase/move_block"
)

// MoveBlockRequest HTTP request model
type MoveBlockRequest struct {
	TechnicianID int64  `json:"technicianId"`
	Start        string `json:"start"` // RFC3339
	End          string `json:"end"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *MoveBlockRequest) ToUseCaseRequest(blockID int64) (*moveBlock.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, err
	}
	return &moveBlock.Request{
		BlockID:      blockID,
		TechnicianID: r.TechnicianID,
		StartTime:    start,
		EndTime:      end,
	}, nil
}

package create_block

import (
	"time"

	createBlock "github.com/m04kA/SMC-CalendarService/internal/usecase/create_block"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	TechnicianID   int64   `json:"technicianId"`
	Title          string  `json:"title"`
	BlockType      string  `json:"blockType,omitempty"`
	Start          string  `json:"start"` // RFC3339
	End            string  `json:"end"`
	RecurrenceRule *string `json:"recurrenceRule,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBlockRequest) ToUseCaseRequest() (*createBlock.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, err
	}
	return &createBlock.Request{
		TechnicianID:   r.TechnicianID,
		Title:          r.Title,
		BlockType:      r.BlockType,
		RecurrenceRule: r.RecurrenceRule,
		StartTime:      start,
		EndTime:        end,
	}, nil
}

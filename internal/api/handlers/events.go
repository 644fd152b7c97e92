package handlers

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// EventRefResponse ссылка на событие календаря в ответах
type EventRefResponse struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`

	// OccurrenceStart начало вхождения повторяющегося блока (RFC3339)
	OccurrenceStart string `json:"occurrenceStart,omitempty"`
}

// EventRefs конвертирует ссылки на события, nil превращается в пустой список
func EventRefs(refs []domain.EventRef) []EventRefResponse {
	out := make([]EventRefResponse, 0, len(refs))
	for _, r := range refs {
		ref := EventRefResponse{Kind: r.Kind.String(), ID: r.ID}
		if r.Occurrence != 0 {
			ref.OccurrenceStart = time.Unix(r.Occurrence, 0).UTC().Format(time.RFC3339)
		}
		out = append(out, ref)
	}
	return out
}

// BlockResponse блок личного времени в ответах
type BlockResponse struct {
	ID             int64              `json:"id"`
	TechnicianID   int64              `json:"technicianId"`
	Title          string             `json:"title"`
	BlockType      string             `json:"blockType"`
	Start          string             `json:"start"`
	End            string             `json:"end"`
	RecurrenceRule *string            `json:"recurrenceRule,omitempty"`
	Conflicts      []EventRefResponse `json:"conflicts"`
}

// NewBlockResponse собирает ответ по блоку и его пересечениям
func NewBlockResponse(b *domain.TechnicianBlock, conflicts []domain.EventRef) *BlockResponse {
	return &BlockResponse{
		ID:             b.ID,
		TechnicianID:   b.TechnicianID,
		Title:          b.Title,
		BlockType:      string(b.BlockType),
		Start:          b.StartTime.Format(time.RFC3339),
		End:            b.EndTime.Format(time.RFC3339),
		RecurrenceRule: b.RecurrenceRule,
		Conflicts:      EventRefs(conflicts),
	}
}

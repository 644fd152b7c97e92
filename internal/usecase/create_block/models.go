package create_block

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Request модель запроса на создание блока
type Request struct {
	TechnicianID   int64
	Title          string
	BlockType      string  // пусто: personal
	RecurrenceRule *string // RRULE, опционально
	StartTime      time.Time
	EndTime        time.Time
}

// Response созданный блок и пересечения с ним
type Response struct {
	Block     *domain.TechnicianBlock
	Conflicts []domain.EventRef
}

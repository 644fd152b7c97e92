package move_block

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Request модель запроса на перенос блока
type Request struct {
	BlockID      int64
	TechnicianID int64
	StartTime    time.Time
	EndTime      time.Time
}

// Response результат переноса
type Response struct {
	Block     *domain.TechnicianBlock
	Conflicts []domain.EventRef
}

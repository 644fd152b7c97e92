package move_block

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// BlockRepository интерфейс репозитория блоков
type BlockRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TechnicianBlock, error)
	Reschedule(ctx context.Context, id, technicianID int64, start, end time.Time) error
}

// TechnicianRepository интерфейс репозитория мастеров
type TechnicianRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Technician, error)
}

// ConflictFinder интерфейс поиска пересечений на новом месте
type ConflictFinder interface {
	Conflicts(ctx context.Context, candidate domain.CalendarEvent) ([]domain.EventRef, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MoveRecorder метрика переносов
type MoveRecorder interface {
	RecordMove(kind, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

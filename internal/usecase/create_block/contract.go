package create_block

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// BlockRepository интерфейс репозитория блоков
type BlockRepository interface {
	Create(ctx context.Context, b *domain.TechnicianBlock) (*domain.TechnicianBlock, error)
}

// TechnicianRepository интерфейс репозитория мастеров
type TechnicianRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Technician, error)
}

// ConflictFinder интерфейс поиска пересечений
type ConflictFinder interface {
	Conflicts(ctx context.Context, candidate domain.CalendarEvent) ([]domain.EventRef, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

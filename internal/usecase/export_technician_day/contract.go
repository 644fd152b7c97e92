package export_technician_day

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/service/events"
)

// TechnicianRepository интерфейс репозитория мастеров
type TechnicianRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Technician, error)
}

// EventLoader интерфейс загрузки событий календаря
type EventLoader interface {
	Load(ctx context.Context, q events.Query) ([]domain.CalendarEvent, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package events

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/appointment"
	blockRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/block"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	List(ctx context.Context, filter appointmentRepo.Filter) ([]*domain.Appointment, error)
}

// BlockRepository интерфейс репозитория блоков
type BlockRepository interface {
	List(ctx context.Context, filter blockRepo.Filter) ([]*domain.TechnicianBlock, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package move_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/notificationservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
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

// NotificationClient интерфейс клиента NotificationService
type NotificationClient interface {
	SendRescheduleWithGracefulDegradation(ctx context.Context, notice notificationservice.RescheduleNotice) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MoveRecorder метрики переносов и уведомлений
type MoveRecorder interface {
	RecordMove(kind, result string)
	RecordNotification(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

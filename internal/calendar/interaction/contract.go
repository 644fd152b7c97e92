package interaction

import (
	"context"
	"time"
)

// Committer операции записи, которые вызывает машина состояний.
// Отказ (конфликт, не найдено, устаревшие данные) возвращается ошибкой
type Committer interface {
	MoveAppointment(ctx context.Context, appointmentID, technicianID int64, start, end time.Time, notifyClient bool) error
	MoveBlock(ctx context.Context, blockID, technicianID int64, start, end time.Time) error
	CreateBlock(ctx context.Context, technicianID int64, title string, start, end time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

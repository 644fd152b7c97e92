package tui

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/interaction"
	"github.com/m04kA/SMC-CalendarService/internal/integrations/calendarapi"
)

// CalendarClient источник дневной сетки и исполнитель сохранений
type CalendarClient interface {
	interaction.Committer
	GetDay(ctx context.Context, q calendarapi.DayQuery) (*calendarapi.Day, error)
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

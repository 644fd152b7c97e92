package get_day_calendar

import (
	"context"

	getDayCalendar "github.com/m04kA/SMC-CalendarService/internal/usecase/get_day_calendar"
)

type GetDayCalendarUseCase interface {
	Execute(ctx context.Context, req *getDayCalendar.Request) (*getDayCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

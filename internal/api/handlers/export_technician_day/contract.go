package export_technician_day

import (
	"context"

	exportTechnicianDay "github.com/m04kA/SMC-CalendarService/internal/usecase/export_technician_day"
)

type ExportTechnicianDayUseCase interface {
	Execute(ctx context.Context, req *exportTechnicianDay.Request) (*exportTechnicianDay.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

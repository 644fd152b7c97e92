package move_block

import (
	"context"

	moveBlock "github.com/m04kA/SMC-CalendarService/internal/usecase/move_block"
)

type MoveBlockUseCase interface {
	Execute(ctx context.Context, req *moveBlock.Request) (*moveBlock.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

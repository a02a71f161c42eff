package create_slot

import (
	"context"

	createSlot "github.com/m04kA/TMS-SchedulingService/internal/usecase/create_slot"
)

type CreateSlotUseCase interface {
	Execute(ctx context.Context, req *createSlot.Request) (*createSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

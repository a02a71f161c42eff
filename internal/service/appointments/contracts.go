package appointments

import (
	"context"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetEntryByID(ctx context.Context, id int64) (*domain.ScheduleEntry, error)
	ListWithFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.ScheduleEntry, error)
}

// StaffDirectory интерфейс клиента справочника персонала
type StaffDirectory interface {
	ResolveName(ctx context.Context, staffID int64) string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

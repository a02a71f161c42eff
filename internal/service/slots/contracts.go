package slots

import (
	"context"
	"time"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WorkingSlot, error)
	GetByTailorAndDate(ctx context.Context, tailorID int64, date time.Time) ([]*domain.WorkingSlot, error)
	ListWithFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.WorkingSlot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus, manuallyBlocked bool) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	CountActiveBySlot(ctx context.Context, slotID int64) (int, error)
}

// StaffDirectory интерфейс клиента справочника персонала
type StaffDirectory interface {
	ResolveName(ctx context.Context, staffID int64) string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

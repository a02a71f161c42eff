package update_appointment_status

import (
	"context"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	CountActiveBySlot(ctx context.Context, slotID int64) (int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WorkingSlot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus, manuallyBlocked bool) error
}

// OrderServiceClient интерфейс клиента сервиса заказов
type OrderServiceClient interface {
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error
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

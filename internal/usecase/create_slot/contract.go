package create_slot

import (
	"context"
	"time"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.WorkingSlot) (*domain.WorkingSlot, error)
	GetByTailorAndDate(ctx context.Context, tailorID int64, date time.Time) ([]*domain.WorkingSlot, error)
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

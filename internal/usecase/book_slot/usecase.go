package book_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
	slotRepo "github.com/m04kA/TMS-SchedulingService/internal/infra/storage/slot"
)

// UseCase use case для записи клиента в рабочий слот
type UseCase struct {
	slotRepo  SlotRepository
	apptRepo  AppointmentRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	apptRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:  slotRepo,
		apptRepo:  apptRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет use case записи клиента
// Проверка вместимости и вставка идут в одной сериализуемой транзакции с
// блокировкой строки слота, поэтому при вместимости N в слот попадают
// ровно N активных записей даже при конкурентных запросах
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: slot=%d, customer=%d", req.SlotID, req.CustomerID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		return nil, err
	}

	var (
		result     *domain.Appointment
		slotStatus domain.SlotStatus
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Получаем слот с блокировкой (FOR UPDATE)
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("BookSlot: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("BookSlot: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 3. Заблокированный вручную слот не принимает записи независимо
		// от свободных мест
		if slot.ManuallyBlocked {
			uc.logger.Warn("BookSlot: slot id=%d is manually blocked", req.SlotID)
			return ErrSlotBlocked
		}

		// 4. Проверяем вместимость по числу активных записей
		activeCount, err := uc.apptRepo.CountActiveBySlot(txCtx, req.SlotID)
		if err != nil {
			uc.logger.Error("BookSlot: failed to count active appointments for slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to count active appointments: %v", ErrInternal, err)
		}

		if activeCount >= slot.Capacity {
			uc.logger.Warn("BookSlot: slot id=%d is full, %d/%d spots taken",
				req.SlotID, activeCount, slot.Capacity)
			return ErrSlotFull
		}

		uc.logger.Info("BookSlot: slot id=%d available, %d/%d spots taken",
			req.SlotID, activeCount, slot.Capacity)

		// 5. Создаем запись в статусе pending
		appt := &domain.Appointment{
			SlotID:        req.SlotID,
			CustomerID:    req.CustomerID,
			Status:        domain.AppointmentStatusPending,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			OrderID:       req.OrderID,
			Notes:         req.Notes,
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("BookSlot: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 6. Пересчитываем статус слота с учетом новой записи
		newStatus := domain.DeriveSlotStatus(slot.ManuallyBlocked, activeCount+1, slot.Capacity)
		if newStatus != slot.Status {
			if err := uc.slotRepo.UpdateStatus(txCtx, slot.ID, newStatus, slot.ManuallyBlocked); err != nil {
				uc.logger.Error("BookSlot: failed to update slot id=%d status: %v", slot.ID, err)
				return fmt.Errorf("%w: failed to update slot status: %v", ErrInternal, err)
			}
		}

		result = created
		slotStatus = newStatus
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookSlot: successfully created appointment id=%d, slot id=%d status=%s",
		result.ID, result.SlotID, slotStatus)

	return &Response{
		ID:            result.ID,
		SlotID:        result.SlotID,
		CustomerID:    result.CustomerID,
		Status:        string(result.Status),
		CustomerName:  result.CustomerName,
		CustomerPhone: result.CustomerPhone,
		OrderID:       result.OrderID,
		Notes:         result.Notes,
		SlotStatus:    string(slotStatus),
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

package update_appointment_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/TMS-SchedulingService/internal/infra/storage/appointment"
	slotRepo "github.com/m04kA/TMS-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/TMS-SchedulingService/internal/integrations/orderservice"
)

// UseCase use case для смены статуса записи
type UseCase struct {
	apptRepo    AppointmentRepository
	slotRepo    SlotRepository
	orderClient OrderServiceClient
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	slotRepo SlotRepository,
	orderClient OrderServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:    apptRepo,
		slotRepo:    slotRepo,
		orderClient: orderClient,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case смены статуса
// Переход проверяется по графу статусов, после перехода в той же
// сериализуемой транзакции пересчитывается статус слота. Каскад статуса
// связанного заказа идет после коммита и не влияет на результат операции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointmentStatus: appointment=%d, status=%s", req.AppointmentID, req.Status)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		uc.logger.Warn("UpdateAppointmentStatus: invalid appointment id=%d", req.AppointmentID)
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	newStatus := domain.AppointmentStatus(req.Status)
	if !domain.IsValidAppointmentStatus(newStatus) {
		uc.logger.Warn("UpdateAppointmentStatus: unknown status %q", req.Status)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	var (
		result     *domain.Appointment
		slot       *domain.WorkingSlot
		slotStatus domain.SlotStatus
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Получаем запись с блокировкой (FOR UPDATE)
		appt, err := uc.apptRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointmentStatus: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointmentStatus: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 3. Проверяем допустимость перехода
		if !appt.Status.CanTransitionTo(newStatus) {
			uc.logger.Warn("UpdateAppointmentStatus: illegal transition %s -> %s for appointment id=%d",
				appt.Status, newStatus, appt.ID)
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, appt.Status, newStatus)
		}

		// 4. Меняем статус записи
		if err := uc.apptRepo.UpdateStatus(txCtx, appt.ID, newStatus); err != nil {
			uc.logger.Error("UpdateAppointmentStatus: failed to update appointment id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}
		appt.Status = newStatus

		// 5. Получаем слот с блокировкой и пересчитываем его статус по
		// свежему числу активных записей
		s, err := uc.slotRepo.GetByID(txCtx, appt.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Error("UpdateAppointmentStatus: slot id=%d not found for appointment id=%d",
					appt.SlotID, appt.ID)
				return fmt.Errorf("%w: slot id=%d not found", ErrInternal, appt.SlotID)
			}
			uc.logger.Error("UpdateAppointmentStatus: failed to get slot id=%d: %v", appt.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		activeCount, err := uc.apptRepo.CountActiveBySlot(txCtx, s.ID)
		if err != nil {
			uc.logger.Error("UpdateAppointmentStatus: failed to count active appointments for slot id=%d: %v", s.ID, err)
			return fmt.Errorf("%w: failed to count active appointments: %v", ErrInternal, err)
		}

		derived := domain.DeriveSlotStatus(s.ManuallyBlocked, activeCount, s.Capacity)
		if derived != s.Status {
			if err := uc.slotRepo.UpdateStatus(txCtx, s.ID, derived, s.ManuallyBlocked); err != nil {
				uc.logger.Error("UpdateAppointmentStatus: failed to update slot id=%d status: %v", s.ID, err)
				return fmt.Errorf("%w: failed to update slot status: %v", ErrInternal, err)
			}
		}

		result = appt
		slot = s
		slotStatus = derived
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointmentStatus: appointment id=%d -> %s, slot id=%d status=%s",
		result.ID, result.Status, slot.ID, slotStatus)

	// 6. Каскад статуса связанного заказа после коммита; сбой каскада не
	// откатывает уже завершенную запись
	if result.Status == domain.AppointmentStatusDone && result.OrderID != nil {
		uc.cascadeOrderStatus(ctx, *result.OrderID, slot.Type)
	}

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

// cascadeOrderStatus продвигает статус связанного заказа в зависимости от
// типа завершенного слота: выдача закрывает заказ, примерка переводит его
// в работу. Остальные типы слотов заказ не трогают.
func (uc *UseCase) cascadeOrderStatus(ctx context.Context, orderID int64, slotType domain.SlotType) {
	var orderStatus string

	switch slotType {
	case domain.SlotTypePickup:
		orderStatus = orderservice.OrderStatusCompleted
	case domain.SlotTypeFitting:
		orderStatus = orderservice.OrderStatusInProgress
	default:
		return
	}

	if err := uc.orderClient.UpdateOrderStatus(ctx, orderID, orderStatus); err != nil {
		uc.logger.Error("UpdateAppointmentStatus: failed to cascade order id=%d to %q: %v",
			orderID, orderStatus, err)
		return
	}

	uc.logger.Info("UpdateAppointmentStatus: order id=%d moved to %q", orderID, orderStatus)
}

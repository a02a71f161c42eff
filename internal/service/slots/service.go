package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
	slotRepo "github.com/m04kA/TMS-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/TMS-SchedulingService/internal/service/slots/models"
)

// Service сервис для работы с рабочими слотами
type Service struct {
	slotRepo  SlotRepository
	apptRepo  AppointmentRepository
	staff     StaffDirectory
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	apptRepo AppointmentRepository,
	staff StaffDirectory,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:  slotRepo,
		apptRepo:  apptRepo,
		staff:     staff,
		txManager: txManager,
		logger:    logger,
	}
}

// GetByID получает слот по ID с именем мастера и текущей занятостью
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	count, err := s.apptRepo.CountActiveBySlot(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to count active appointments for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - count error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot, s.staff.ResolveName(ctx, slot.TailorID), count), nil
}

// List получает слоты с фильтрацией по дате/периоду, мастеру, типу и статусу
// Каждый слот обогащается именем мастера и текущим числом активных записей
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	slots, err := s.slotRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	// Кэшируем имена мастеров в рамках запроса, чтобы не дёргать
	// справочник на каждый слот одного и того же мастера
	names := make(map[int64]string)
	resolveName := func(tailorID int64) string {
		if name, ok := names[tailorID]; ok {
			return name
		}
		name := s.staff.ResolveName(ctx, tailorID)
		names[tailorID] = name
		return name
	}

	resp := &models.SlotListResponse{
		Slots: make([]models.SlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		count, err := s.apptRepo.CountActiveBySlot(ctx, slot.ID)
		if err != nil {
			s.logger.Error("List: failed to count active appointments for slot id=%d: %v", slot.ID, err)
			return nil, fmt.Errorf("%w: List - count error: %v", ErrInternal, err)
		}
		resp.Slots = append(resp.Slots, *models.FromDomainSlot(slot, resolveName(slot.TailorID), count))
	}

	s.logger.Info("List: fetched %d slots", len(resp.Slots))
	return resp, nil
}

// ToggleBlock переключает ручную блокировку слота
// Статус после переключения выводится заново из блокировки и текущей
// занятости; существующие записи слота не затрагиваются
func (s *Service) ToggleBlock(ctx context.Context, id int64) (*models.SlotResponse, error) {
	s.logger.Info("ToggleBlock: toggling block for slot id=%d", id)

	var updated *domain.WorkingSlot
	var activeCount int

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: ToggleBlock - repository error: %v", ErrInternal, err)
		}

		count, err := s.apptRepo.CountActiveBySlot(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: ToggleBlock - count error: %v", ErrInternal, err)
		}

		blocked := !slot.ManuallyBlocked
		status := domain.DeriveSlotStatus(blocked, count, slot.Capacity)

		if err := s.slotRepo.UpdateStatus(txCtx, id, status, blocked); err != nil {
			return fmt.Errorf("%w: ToggleBlock - update error: %v", ErrInternal, err)
		}

		slot.ManuallyBlocked = blocked
		slot.Status = status
		updated = slot
		activeCount = count
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			s.logger.Warn("ToggleBlock: slot id=%d not found", id)
		} else {
			s.logger.Error("ToggleBlock: failed for slot id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("ToggleBlock: slot id=%d now blocked=%t status=%s", id, updated.ManuallyBlocked, updated.Status)
	return models.FromDomainSlot(updated, s.staff.ResolveName(ctx, updated.TailorID), activeCount), nil
}

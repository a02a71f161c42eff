package create_slot

import (
	"context"
	"fmt"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
)

// UseCase use case для создания рабочего слота мастера
type UseCase struct {
	slotRepo  SlotRepository
	staff     StaffDirectory
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	staff StaffDirectory,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:  slotRepo,
		staff:     staff,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет use case создания слота
// Использует сериализуемую транзакцию, чтобы два конкурентных создания
// пересекающихся слотов одного мастера не прошли оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSlot: tailor=%d, date=%s, window=%s-%s, type=%s",
		req.TailorID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.Type)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSlot: validation failed: %v", err)
		return nil, err
	}

	capacity := domain.DefaultSlotCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}

	candidate := &domain.WorkingSlot{
		TailorID:   req.TailorID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		BreakStart: req.BreakStart,
		BreakEnd:   req.BreakEnd,
		Type:       domain.SlotType(req.Type),
		Capacity:   capacity,
		Status:     domain.SlotStatusAvailable,
	}

	var result *domain.WorkingSlot

	// 2. Проверка пересечений и вставка в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем слоты мастера на эту дату с блокировкой (FOR UPDATE)
		existing, err := uc.slotRepo.GetByTailorAndDate(txCtx, req.TailorID, req.Date)
		if err != nil {
			uc.logger.Error("CreateSlot: failed to get slots for tailor=%d: %v", req.TailorID, err)
			return fmt.Errorf("%w: failed to get existing slots: %v", ErrInternal, err)
		}

		// 2.2. Полуоткрытые окна: касание границ пересечением не считается
		if overlap := findOverlapping(candidate, existing); overlap != nil {
			uc.logger.Warn("CreateSlot: window %s-%s overlaps slot id=%d (%s-%s)",
				req.StartTime, req.EndTime, overlap.ID, overlap.StartTime, overlap.EndTime)
			return ErrOverlappingSlot
		}

		// 2.3. Сохраняем слот
		created, err := uc.slotRepo.Create(txCtx, candidate)
		if err != nil {
			uc.logger.Error("CreateSlot: failed to create slot: %v", err)
			return fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateSlot: successfully created slot id=%d", result.ID)

	return &Response{
		ID:         result.ID,
		TailorID:   result.TailorID,
		TailorName: uc.staff.ResolveName(ctx, result.TailorID),
		Date:       result.Date,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		BreakStart: result.BreakStart,
		BreakEnd:   result.BreakEnd,
		Type:       string(result.Type),
		Capacity:   result.Capacity,
		Status:     string(result.Status),
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}

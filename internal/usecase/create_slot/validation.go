package create_slot

import (
	"fmt"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TailorID <= 0 {
		return ErrMissingTailor
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidWindow)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidWindow, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidWindow, err)
	}

	// Окно слота полуоткрытое [start, end), поэтому конец строго позже начала
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidWindow)
	}

	if err := validateBreak(req); err != nil {
		return err
	}

	if !domain.IsValidSlotType(domain.SlotType(req.Type)) {
		return fmt.Errorf("%w: unknown slot type %q", ErrInvalidInput, req.Type)
	}

	if req.Capacity != nil {
		if *req.Capacity < domain.MinSlotCapacity || *req.Capacity > domain.MaxSlotCapacity {
			return fmt.Errorf("%w: capacity must be between %d and %d",
				ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
		}
	}

	return nil
}

// validateBreak проверяет, что окно перерыва задано целиком и лежит внутри слота
func validateBreak(req *Request) error {
	if req.BreakStart == nil && req.BreakEnd == nil {
		return nil
	}

	if req.BreakStart == nil || req.BreakEnd == nil {
		return fmt.Errorf("%w: breakStart and breakEnd must be set together", ErrInvalidBreak)
	}

	if err := req.BreakStart.Validate(); err != nil {
		return fmt.Errorf("%w: invalid breakStart format: %v", ErrInvalidBreak, err)
	}

	if err := req.BreakEnd.Validate(); err != nil {
		return fmt.Errorf("%w: invalid breakEnd format: %v", ErrInvalidBreak, err)
	}

	if !req.BreakStart.IsBefore(*req.BreakEnd) {
		return fmt.Errorf("%w: breakEnd must be after breakStart", ErrInvalidBreak)
	}

	if req.BreakStart.IsBefore(req.StartTime) || req.EndTime.IsBefore(*req.BreakEnd) {
		return fmt.Errorf("%w: break must fit inside the slot window", ErrInvalidBreak)
	}

	return nil
}

// findOverlapping возвращает первый существующий слот мастера, чьё окно
// пересекается с создаваемым, либо nil
func findOverlapping(candidate *domain.WorkingSlot, existing []*domain.WorkingSlot) *domain.WorkingSlot {
	for _, slot := range existing {
		if candidate.Overlaps(slot) {
			return slot
		}
	}
	return nil
}

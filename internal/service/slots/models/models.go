package models

import (
	"errors"
	"time"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
)

var (
	// ErrInvalidSlotType возвращается при неизвестном типе слота
	ErrInvalidSlotType = errors.New("invalid slot type")

	// ErrInvalidSlotStatus возвращается при неизвестном статусе слота
	ErrInvalidSlotStatus = errors.New("invalid slot status")
)

// Request модели

// ListSlotsRequest запрос на получение слотов
// Date и пара StartDate/EndDate взаимоисключающие; Date имеет приоритет
type ListSlotsRequest struct {
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time
	TailorID  *int64
	Type      *string
	Status    *string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListSlotsRequest) ToDomainFilter() (domain.SlotFilter, error) {
	filter := domain.SlotFilter{
		TailorID: r.TailorID,
	}

	if r.Date != nil {
		filter.StartDate = r.Date
		filter.EndDate = r.Date
	} else {
		filter.StartDate = r.StartDate
		filter.EndDate = r.EndDate
	}

	if r.Type != nil {
		slotType, err := ToDomainSlotType(*r.Type)
		if err != nil {
			return filter, err
		}
		filter.Type = &slotType
	}

	if r.Status != nil {
		status, err := ToDomainSlotStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID         int64   `json:"id"`
	TailorID   int64   `json:"tailorId"`
	TailorName string  `json:"tailorName"`
	Date       string  `json:"date"`      // "2025-10-15"
	StartTime  string  `json:"startTime"` // "09:00"
	EndTime    string  `json:"endTime"`   // "10:00"
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
	Type       string  `json:"type"`
	Capacity   int     `json:"capacity"`
	Status     string  `json:"status"`

	// BookedCount число активных записей слота на момент запроса
	BookedCount int `json:"bookedCount"`

	// Смещения в минутах от якоря дневной сетки (08:00) для отрисовки
	// расписания; чистая проекция, бизнес-правил на ней нет
	StartMinutes int `json:"startMinutes"`
	EndMinutes   int `json:"endMinutes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.WorkingSlot, tailorName string, activeCount int) *SlotResponse {
	if s == nil {
		return nil
	}

	resp := &SlotResponse{
		ID:          s.ID,
		TailorID:    s.TailorID,
		TailorName:  tailorName,
		Date:        s.Date.Format(domain.DateFormat),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		Type:        string(s.Type),
		Capacity:    s.Capacity,
		Status:      string(s.Status),
		BookedCount: activeCount,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	if s.BreakStart != nil {
		v := s.BreakStart.String()
		resp.BreakStart = &v
	}
	if s.BreakEnd != nil {
		v := s.BreakEnd.String()
		resp.BreakEnd = &v
	}

	if start, err := s.StartTime.Minutes(); err == nil {
		resp.StartMinutes = start - domain.DayGridAnchorMinutes
	}
	if end, err := s.EndTime.Minutes(); err == nil {
		resp.EndMinutes = end - domain.DayGridAnchorMinutes
	}

	return resp
}

// ToDomainSlotType конвертирует строку в domain.SlotType с валидацией
func ToDomainSlotType(t string) (domain.SlotType, error) {
	slotType := domain.SlotType(t)
	if !domain.IsValidSlotType(slotType) {
		return "", ErrInvalidSlotType
	}
	return slotType, nil
}

// ToDomainSlotStatus конвертирует строку в domain.SlotStatus с валидацией
func ToDomainSlotStatus(s string) (domain.SlotStatus, error) {
	status := domain.SlotStatus(s)
	if !domain.IsValidSlotStatus(status) {
		return "", ErrInvalidSlotStatus
	}
	return status, nil
}

package models

import (
	"errors"
	"time"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при неизвестном статусе записи
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidSlotType возвращается при неизвестном типе слота
	ErrInvalidSlotType = errors.New("invalid slot type")
)

// Request модели

// ListAppointmentsRequest запрос на получение записей
// Date задаёт день; Week=true расширяет его до недели (понедельник-воскресенье),
// содержащей эту дату. Альтернативно можно задать произвольный период
// StartDate/EndDate. Остальные фильтры комбинируются по "И"
type ListAppointmentsRequest struct {
	Date      *time.Time
	Week      bool
	StartDate *time.Time
	EndDate   *time.Time
	TailorID  *int64
	Type      *string
	Status    *string
	Search    *string
}

// ToDomainFilter конвертирует request в domain фильтр
// Недельное окно разворачивается здесь, чтобы вызывающие никогда не
// вычисляли границы недели сами
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		TailorID: r.TailorID,
		Search:   r.Search,
	}

	switch {
	case r.Date != nil && r.Week:
		monday, sunday := domain.WeekRange(*r.Date)
		filter.StartDate = &monday
		filter.EndDate = &sunday
	case r.Date != nil:
		filter.StartDate = r.Date
		filter.EndDate = r.Date
	default:
		filter.StartDate = r.StartDate
		filter.EndDate = r.EndDate
	}

	if r.Type != nil {
		slotType := domain.SlotType(*r.Type)
		if !domain.IsValidSlotType(slotType) {
			return filter, ErrInvalidSlotType
		}
		filter.SlotType = &slotType
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи и её слота
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	SlotID     int64  `json:"slotId"`
	TailorID   int64  `json:"tailorId"`
	TailorName string `json:"tailorName"`
	Date       string `json:"date"`      // "2025-10-15"
	StartTime  string `json:"startTime"` // "09:00"
	EndTime    string `json:"endTime"`   // "10:00"
	Type       string `json:"type"`
	Status     string `json:"status"`

	CustomerID    int64   `json:"customerId"`
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	OrderID       *int64  `json:"orderId,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	// Смещения в минутах от якоря дневной сетки (08:00)
	StartMinutes int `json:"startMinutes"`
	EndMinutes   int `json:"endMinutes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GroupedAppointmentsResponse записи, сгруппированные по типу слота
// Внутри каждой группы записи отсортированы по дате и времени начала
type GroupedAppointmentsResponse struct {
	Consult []AppointmentResponse `json:"consult"`
	Measure []AppointmentResponse `json:"measure"`
	Fitting []AppointmentResponse `json:"fitting"`
	Pickup  []AppointmentResponse `json:"pickup"`
	Total   int                   `json:"total"`
}

// Методы конвертации

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.ScheduleEntry, tailorName string) *AppointmentResponse {
	if e == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:            e.Appointment.ID,
		SlotID:        e.Appointment.SlotID,
		TailorID:      e.Slot.TailorID,
		TailorName:    tailorName,
		Date:          e.Slot.Date.Format(domain.DateFormat),
		StartTime:     e.Slot.StartTime.String(),
		EndTime:       e.Slot.EndTime.String(),
		Type:          string(e.Slot.Type),
		Status:        string(e.Appointment.Status),
		CustomerID:    e.Appointment.CustomerID,
		CustomerName:  e.Appointment.CustomerName,
		CustomerPhone: e.Appointment.CustomerPhone,
		OrderID:       e.Appointment.OrderID,
		Notes:         e.Appointment.Notes,
		CreatedAt:     e.Appointment.CreatedAt,
		UpdatedAt:     e.Appointment.UpdatedAt,
	}

	if start, err := e.Slot.StartTime.Minutes(); err == nil {
		resp.StartMinutes = start - domain.DayGridAnchorMinutes
	}
	if end, err := e.Slot.EndTime.Minutes(); err == nil {
		resp.EndMinutes = end - domain.DayGridAnchorMinutes
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !domain.IsValidAppointmentStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}

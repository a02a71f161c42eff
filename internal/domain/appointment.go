package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusDone      AppointmentStatus = "done"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a customer's booking against one working slot
type Appointment struct {
	ID         int64
	SlotID     int64
	CustomerID int64
	Status     AppointmentStatus

	// Denormalized customer data for search and history
	CustomerName  *string
	CustomerPhone *string

	// Optional link to an external order; drives the order-status cascade
	// when the appointment completes
	OrderID *int64

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment counts against slot capacity
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

// IsTerminal returns true if the appointment reached a final status
func (a *Appointment) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusDone || s == AppointmentStatusCancelled
}

// appointmentTransitions legal status graph:
// pending -> confirmed -> done, cancellation from pending or confirmed
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusDone, AppointmentStatusCancelled},
	AppointmentStatusDone:      {},
	AppointmentStatusCancelled: {},
}

// CanTransitionTo reports whether the status change s -> next is legal
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValidAppointmentStatus reports whether s is one of the known statuses
func IsValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusDone, AppointmentStatusCancelled:
		return true
	}
	return false
}

// AppointmentFilter фильтр для выборки записей
// Все поля опциональны и комбинируются по "И"
type AppointmentFilter struct {
	TailorID  *int64
	SlotType  *SlotType
	Status    *AppointmentStatus
	StartDate *time.Time // включительно
	EndDate   *time.Time // включительно

	// Search регистронезависимый поиск подстроки по id записи,
	// id/имени/телефону клиента
	Search *string
}

// ScheduleEntry appointment together with its owning slot, as returned by
// schedule queries (the slot carries the date, window and tailor)
type ScheduleEntry struct {
	Appointment Appointment
	Slot        WorkingSlot
}

package domain

import (
	"time"

	"github.com/m04kA/TMS-SchedulingService/pkg/types"
)

// SlotType represents the kind of work a slot is reserved for
type SlotType string

const (
	SlotTypeConsult SlotType = "consult"
	SlotTypeMeasure SlotType = "measure"
	SlotTypeFitting SlotType = "fitting"
	SlotTypePickup  SlotType = "pickup"
)

// SlotStatus represents the derived availability of a slot
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusBlocked   SlotStatus = "blocked"
)

// WorkingSlot represents a bounded time window on a date, owned by one tailor
type WorkingSlot struct {
	ID         int64
	TailorID   int64
	Date       time.Time // calendar date, time component is always midnight
	StartTime  types.TimeString
	EndTime    types.TimeString
	BreakStart *types.TimeString // informational, not enforced against bookings
	BreakEnd   *types.TimeString
	Type       SlotType
	Capacity   int

	// ManuallyBlocked is the stored override; Status is always derived from it
	// together with the live active-appointment count
	ManuallyBlocked bool
	Status          SlotStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether the half-open windows [StartTime, EndTime) of two
// slots intersect. Touching boundaries (one ends where the other starts) do
// not count as overlap.
func (s *WorkingSlot) Overlaps(other *WorkingSlot) bool {
	s1, err := s.StartTime.Minutes()
	if err != nil {
		return false
	}
	e1, err := s.EndTime.Minutes()
	if err != nil {
		return false
	}
	s2, err := other.StartTime.Minutes()
	if err != nil {
		return false
	}
	e2, err := other.EndTime.Minutes()
	if err != nil {
		return false
	}
	return IntervalsOverlap(s1, e1, s2, e2)
}

// IntervalsOverlap reports whether half-open minute intervals [s1,e1) and
// [s2,e2) intersect
func IntervalsOverlap(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// DeriveSlotStatus computes a slot's status from its stored override and the
// current count of active appointments. Pure and idempotent; every mutating
// operation recomputes it inside its own transaction.
func DeriveSlotStatus(manuallyBlocked bool, activeCount, capacity int) SlotStatus {
	if manuallyBlocked {
		return SlotStatusBlocked
	}
	if activeCount >= capacity {
		return SlotStatusBooked
	}
	return SlotStatusAvailable
}

// IsValidSlotType reports whether t is one of the known slot types
func IsValidSlotType(t SlotType) bool {
	switch t {
	case SlotTypeConsult, SlotTypeMeasure, SlotTypeFitting, SlotTypePickup:
		return true
	}
	return false
}

// IsValidSlotStatus reports whether s is one of the known slot statuses
func IsValidSlotStatus(s SlotStatus) bool {
	switch s {
	case SlotStatusAvailable, SlotStatusBooked, SlotStatusBlocked:
		return true
	}
	return false
}

// SlotFilter фильтр для выборки слотов
// Все поля опциональны и комбинируются по "И"
type SlotFilter struct {
	TailorID  *int64
	StartDate *time.Time // включительно
	EndDate   *time.Time // включительно
	Type      *SlotType
	Status    *SlotStatus
}

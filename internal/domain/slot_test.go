package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/TMS-SchedulingService/pkg/types"
)

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 int
		want           bool
	}{
		{name: "identical windows", s1: 540, e1: 600, s2: 540, e2: 600, want: true},
		{name: "partial overlap", s1: 540, e1: 600, s2: 570, e2: 630, want: true},
		{name: "contained window", s1: 540, e1: 660, s2: 570, e2: 600, want: true},
		{name: "touching boundaries do not overlap", s1: 540, e1: 600, s2: 600, e2: 660, want: false},
		{name: "touching boundaries reversed", s1: 600, e1: 660, s2: 540, e2: 600, want: false},
		{name: "disjoint windows", s1: 540, e1: 600, s2: 720, e2: 780, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.s1, tt.e1, tt.s2, tt.e2))
		})
	}
}

func TestWorkingSlot_Overlaps(t *testing.T) {
	slot := func(start, end string) *WorkingSlot {
		return &WorkingSlot{StartTime: types.TimeString(start), EndTime: types.TimeString(end)}
	}

	assert.True(t, slot("09:00", "10:00").Overlaps(slot("09:30", "10:30")))
	assert.False(t, slot("09:00", "10:00").Overlaps(slot("10:00", "11:00")))
	assert.False(t, slot("09:00", "10:00").Overlaps(slot("11:00", "12:00")))
}

func TestDeriveSlotStatus(t *testing.T) {
	tests := []struct {
		name            string
		manuallyBlocked bool
		activeCount     int
		capacity        int
		want            SlotStatus
	}{
		{name: "empty slot is available", activeCount: 0, capacity: 1, want: SlotStatusAvailable},
		{name: "full slot is booked", activeCount: 1, capacity: 1, want: SlotStatusBooked},
		{name: "partially filled slot is available", activeCount: 1, capacity: 3, want: SlotStatusAvailable},
		{name: "overfilled slot is booked", activeCount: 5, capacity: 3, want: SlotStatusBooked},
		{name: "blocked wins over empty", manuallyBlocked: true, activeCount: 0, capacity: 1, want: SlotStatusBlocked},
		{name: "blocked wins over full", manuallyBlocked: true, activeCount: 1, capacity: 1, want: SlotStatusBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveSlotStatus(tt.manuallyBlocked, tt.activeCount, tt.capacity)
			assert.Equal(t, tt.want, got)

			// Повторный пересчёт от тех же входов даёт тот же статус
			assert.Equal(t, got, DeriveSlotStatus(tt.manuallyBlocked, tt.activeCount, tt.capacity))
		})
	}
}

func TestIsValidSlotType(t *testing.T) {
	for _, st := range []SlotType{SlotTypeConsult, SlotTypeMeasure, SlotTypeFitting, SlotTypePickup} {
		assert.True(t, IsValidSlotType(st))
	}
	assert.False(t, IsValidSlotType("delivery"))
	assert.False(t, IsValidSlotType(""))
}

func TestIsValidSlotStatus(t *testing.T) {
	for _, ss := range []SlotStatus{SlotStatusAvailable, SlotStatusBooked, SlotStatusBlocked} {
		assert.True(t, IsValidSlotStatus(ss))
	}
	assert.False(t, IsValidSlotStatus("closed"))
}

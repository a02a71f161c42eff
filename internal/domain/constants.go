package domain

// Default values
const (
	DefaultSlotCapacity = 1
)

// Business validation constants
const (
	MinSlotCapacity = 1
	MaxSlotCapacity = 50
	MaxNotesLength  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DayGridAnchorMinutes точка отсчёта дневной сетки расписания (08:00)
// Ответы API отдают смещения начала/конца слота в минутах от этого якоря,
// чтобы клиенту не приходилось пересчитывать время в координаты сетки
const DayGridAnchorMinutes = 8 * 60

// ActiveAppointmentStatuses статусы, при которых запись занимает место в слоте
// Используется при подсчёте занятости и выводе статуса слота
var ActiveAppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
}

// TerminalAppointmentStatuses конечные статусы записи
var TerminalAppointmentStatuses = []AppointmentStatus{
	AppointmentStatusDone,
	AppointmentStatusCancelled,
}

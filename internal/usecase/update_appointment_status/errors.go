package update_appointment_status

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment_status: appointment not found")

	// ErrIllegalTransition возвращается при недопустимой смене статуса
	ErrIllegalTransition = errors.New("update_appointment_status: illegal status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment_status: internal error")
)

package book_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("book_slot: slot not found")

	// ErrSlotBlocked возвращается, когда слот вручную заблокирован мастером
	ErrSlotBlocked = errors.New("book_slot: slot is blocked")

	// ErrSlotFull возвращается, когда все места в слоте заняты
	ErrSlotFull = errors.New("book_slot: slot is full")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_slot: internal error")
)

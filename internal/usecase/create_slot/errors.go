package create_slot

import "errors"

var (
	// ErrMissingTailor возвращается, когда мастер не указан
	ErrMissingTailor = errors.New("create_slot: tailor is required")

	// ErrInvalidWindow возвращается, когда временное окно слота некорректно
	ErrInvalidWindow = errors.New("create_slot: invalid time window")

	// ErrInvalidBreak возвращается, когда окно перерыва выходит за границы слота
	ErrInvalidBreak = errors.New("create_slot: invalid break window")

	// ErrOverlappingSlot возвращается, когда окно пересекается с существующим
	// слотом того же мастера на ту же дату
	ErrOverlappingSlot = errors.New("create_slot: overlapping slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_slot: internal error")
)

package staffdirectory

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден в справочнике
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffdirectory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("staffdirectory client: invalid response")
)

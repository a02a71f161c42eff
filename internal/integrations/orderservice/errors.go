package orderservice

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("order not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("orderservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("orderservice client: invalid response")
)

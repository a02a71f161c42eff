package orderservice

// Статусы заказов, которые сервис расписания запрашивает у сервиса заказов
// при завершении записи
const (
	OrderStatusInProgress = "in progress"
	OrderStatusCompleted  = "completed"
)

// UpdateStatusRequest запрос на смену статуса заказа
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ErrorResponse модель ошибки от сервиса заказов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

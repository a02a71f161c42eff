package update_appointment_status

import "time"

// Request модель запроса на смену статуса записи
type Request struct {
	AppointmentID int64  // ID записи
	Status        string // Новый статус: pending, confirmed, done, cancelled
}

// Response модель ответа с обновленной записью
type Response struct {
	ID            int64
	SlotID        int64
	CustomerID    int64
	Status        string
	CustomerName  *string
	CustomerPhone *string
	OrderID       *int64
	Notes         *string

	// SlotStatus статус слота после смены статуса записи
	SlotStatus string

	CreatedAt time.Time
	UpdatedAt time.Time
}

package book_slot

import "time"

// Request модель запроса на запись клиента в слот
type Request struct {
	SlotID        int64   // ID слота
	CustomerID    int64   // ID клиента
	CustomerName  *string // Имя клиента (денормализация для поиска)
	CustomerPhone *string // Телефон клиента
	OrderID       *int64  // ID связанного заказа (опционально)
	Notes         *string // Заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID            int64
	SlotID        int64
	CustomerID    int64
	Status        string
	CustomerName  *string
	CustomerPhone *string
	OrderID       *int64
	Notes         *string

	// SlotStatus статус слота после записи
	SlotStatus string

	CreatedAt time.Time
	UpdatedAt time.Time
}

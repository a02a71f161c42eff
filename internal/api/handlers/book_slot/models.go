package book_slot

import (
	"time"

	bookSlot "github.com/m04kA/TMS-SchedulingService/internal/usecase/book_slot"
)

// BookSlotRequest HTTP request model
type BookSlotRequest struct {
	SlotID        int64   `json:"slotId"`
	CustomerID    int64   `json:"customerId"`
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	OrderID       *int64  `json:"orderId,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	SlotID        int64   `json:"slotId"`
	CustomerID    int64   `json:"customerId"`
	Status        string  `json:"status"`
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	OrderID       *int64  `json:"orderId,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	SlotStatus    string  `json:"slotStatus"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSlotRequest) ToUseCaseRequest() *bookSlot.Request {
	return &bookSlot.Request{
		SlotID:        r.SlotID,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		OrderID:       r.OrderID,
		Notes:         r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		SlotID:        resp.SlotID,
		CustomerID:    resp.CustomerID,
		Status:        resp.Status,
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		OrderID:       resp.OrderID,
		Notes:         resp.Notes,
		SlotStatus:    resp.SlotStatus,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}

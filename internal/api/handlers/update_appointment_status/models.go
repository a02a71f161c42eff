package update_appointment_status

import (
	"time"

	updateStatus "github.com/m04kA/TMS-SchedulingService/internal/usecase/update_appointment_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
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

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *AppointmentResponse {
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

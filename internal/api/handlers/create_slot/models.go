package create_slot

import (
	"time"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
	createSlot "github.com/m04kA/TMS-SchedulingService/internal/usecase/create_slot"
	"github.com/m04kA/TMS-SchedulingService/pkg/types"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	TailorID   int64   `json:"tailorId"`
	Date       string  `json:"date"`      // "2025-10-15"
	StartTime  string  `json:"startTime"` // "09:00"
	EndTime    string  `json:"endTime"`   // "10:00"
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
	Type       string  `json:"type"`
	Capacity   *int    `json:"capacity,omitempty"`
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID         int64   `json:"id"`
	TailorID   int64   `json:"tailorId"`
	TailorName string  `json:"tailorName"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
	Type       string  `json:"type"`
	Capacity   int     `json:"capacity"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSlotRequest) ToUseCaseRequest() (*createSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	req := &createSlot.Request{
		TailorID:  r.TailorID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Type:      r.Type,
		Capacity:  r.Capacity,
	}

	if r.BreakStart != nil {
		breakStart, err := types.NewTimeStringFromString(*r.BreakStart)
		if err != nil {
			return nil, err
		}
		req.BreakStart = &breakStart
	}

	if r.BreakEnd != nil {
		breakEnd, err := types.NewTimeStringFromString(*r.BreakEnd)
		if err != nil {
			return nil, err
		}
		req.BreakEnd = &breakEnd
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSlot.Response) *SlotResponse {
	out := &SlotResponse{
		ID:         resp.ID,
		TailorID:   resp.TailorID,
		TailorName: resp.TailorName,
		Date:       resp.Date.Format(domain.DateFormat),
		StartTime:  resp.StartTime.String(),
		EndTime:    resp.EndTime.String(),
		Type:       resp.Type,
		Capacity:   resp.Capacity,
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.BreakStart != nil {
		v := resp.BreakStart.String()
		out.BreakStart = &v
	}
	if resp.BreakEnd != nil {
		v := resp.BreakEnd.String()
		out.BreakEnd = &v
	}

	return out
}

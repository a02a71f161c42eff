package book_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/TMS-SchedulingService/internal/api/handlers"
	bookSlot "github.com/m04kA/TMS-SchedulingService/internal/usecase/book_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotNotFound       = "слот не найден"
	msgSlotBlocked        = "слот заблокирован мастером"
	msgSlotFull           = "в слоте не осталось свободных мест"
	msgInvalidParams      = "некорректные параметры запроса"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrSlotNotFound):
			h.logger.Warn("POST /appointments - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookSlot.ErrSlotBlocked):
			h.logger.Warn("POST /appointments - Slot blocked: slot_id=%d, customer_id=%d",
				req.SlotID, req.CustomerID)
			handlers.RespondError(w, http.StatusConflict, msgSlotBlocked)

		case errors.Is(err, bookSlot.ErrSlotFull):
			h.logger.Warn("POST /appointments - Slot full: slot_id=%d, customer_id=%d",
				req.SlotID, req.CustomerID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: slot_id=%d, error=%v", req.SlotID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /appointments - Failed to book slot: slot_id=%d, customer_id=%d, error=%v",
				req.SlotID, req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, slot_id=%d, customer_id=%d",
		result.ID, result.SlotID, result.CustomerID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

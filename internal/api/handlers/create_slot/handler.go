package create_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/TMS-SchedulingService/internal/api/handlers"
	createSlot "github.com/m04kA/TMS-SchedulingService/internal/usecase/create_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingTailor      = "не указан мастер"
	msgInvalidWindow      = "некорректное временное окно слота"
	msgInvalidBreak       = "некорректное окно перерыва"
	msgOverlappingSlot    = "слот пересекается с существующим слотом мастера"
	msgInvalidParams      = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateSlotUseCase
	logger  Logger
}

func NewHandler(useCase CreateSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSlot.ErrOverlappingSlot):
			h.logger.Warn("POST /slots - Overlapping slot: tailor_id=%d, date=%s", req.TailorID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgOverlappingSlot)

		case errors.Is(err, createSlot.ErrMissingTailor):
			h.logger.Warn("POST /slots - Missing tailor")
			handlers.RespondBadRequest(w, msgMissingTailor)

		case errors.Is(err, createSlot.ErrInvalidWindow):
			h.logger.Warn("POST /slots - Invalid time window: tailor_id=%d", req.TailorID)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, createSlot.ErrInvalidBreak):
			h.logger.Warn("POST /slots - Invalid break window: tailor_id=%d", req.TailorID)
			handlers.RespondBadRequest(w, msgInvalidBreak)

		case errors.Is(err, createSlot.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid input: tailor_id=%d, error=%v", req.TailorID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /slots - Failed to create slot: tailor_id=%d, error=%v", req.TailorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /slots - Slot created successfully: slot_id=%d, tailor_id=%d", result.ID, result.TailorID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

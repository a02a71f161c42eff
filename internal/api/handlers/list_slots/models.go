package list_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
	"github.com/m04kA/TMS-SchedulingService/internal/service/slots/models"
)

// filterAll значение query-параметра, означающее отсутствие фильтра
const filterAll = "all"

// ToServiceRequest конвертирует query параметры в модель сервиса
// Пустые значения и "all" означают отсутствие фильтра
func ToServiceRequest(dateStr, startDateStr, endDateStr, tailorIDStr, typeStr, statusStr string) (*models.ListSlotsRequest, error) {
	req := &models.ListSlotsRequest{}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if tailorIDStr != "" && tailorIDStr != filterAll {
		tailorID, err := strconv.ParseInt(tailorIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.TailorID = &tailorID
	}

	if typeStr != "" && typeStr != filterAll {
		req.Type = &typeStr
	}

	if statusStr != "" && statusStr != filterAll {
		req.Status = &statusStr
	}

	return req, nil
}

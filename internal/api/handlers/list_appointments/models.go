package list_appointments

import (
	"strconv"
	"time"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
	"github.com/m04kA/TMS-SchedulingService/internal/service/appointments/models"
)

// filterAll значение query-параметра, означающее отсутствие фильтра
const filterAll = "all"

// viewWeek значение view, разворачивающее date в неделю с понедельника
const viewWeek = "week"

// ToServiceRequest конвертирует query параметры в модель сервиса
// Пустые значения и "all" означают отсутствие фильтра
func ToServiceRequest(dateStr, viewStr, startDateStr, endDateStr, tailorIDStr, typeStr, statusStr, searchStr string) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{
		Week: viewStr == viewWeek,
	}

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

	if searchStr != "" {
		req.Search = &searchStr
	}

	return req, nil
}

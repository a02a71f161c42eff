package create_slot

import (
	"time"

	"github.com/m04kA/TMS-SchedulingService/pkg/types"
)

// Request модель запроса на создание рабочего слота
type Request struct {
	TailorID   int64             // ID мастера
	Date       time.Time         // Дата слота (без времени)
	StartTime  types.TimeString  // Время начала (например, "09:00")
	EndTime    types.TimeString  // Время окончания
	BreakStart *types.TimeString // Начало перерыва (опционально)
	BreakEnd   *types.TimeString // Конец перерыва (опционально)
	Type       string            // Тип слота: consult, measure, fitting, pickup
	Capacity   *int              // Вместимость (по умолчанию 1)
}

// Response модель ответа с созданным слотом
type Response struct {
	ID         int64
	TailorID   int64
	TailorName string
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
	Type       string
	Capacity   int
	Status     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

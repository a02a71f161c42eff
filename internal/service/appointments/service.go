package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
	apptRepo "github.com/m04kA/TMS-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/TMS-SchedulingService/internal/service/appointments/models"
)

// Service сервис для чтения расписания записей
type Service struct {
	apptRepo AppointmentRepository
	staff    StaffDirectory
	logger   Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	apptRepo AppointmentRepository,
	staff StaffDirectory,
	logger Logger,
) *Service {
	return &Service{
		apptRepo: apptRepo,
		staff:    staff,
		logger:   logger,
	}
}

// GetByID получает запись по ID вместе с данными слота
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	entry, err := s.apptRepo.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntry(entry, s.staff.ResolveName(ctx, entry.Slot.TailorID)), nil
}

// List получает записи за день/неделю/период и группирует их по типу слота
// Фильтры по мастеру, типу, статусу и поисковой строке комбинируются по "И";
// внутри каждой группы записи идут по возрастанию даты и времени начала
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.GroupedAppointmentsResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	entries, err := s.apptRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	// Кэшируем имена мастеров в рамках запроса
	names := make(map[int64]string)
	resolveName := func(tailorID int64) string {
		if name, ok := names[tailorID]; ok {
			return name
		}
		name := s.staff.ResolveName(ctx, tailorID)
		names[tailorID] = name
		return name
	}

	resp := &models.GroupedAppointmentsResponse{
		Consult: make([]models.AppointmentResponse, 0),
		Measure: make([]models.AppointmentResponse, 0),
		Fitting: make([]models.AppointmentResponse, 0),
		Pickup:  make([]models.AppointmentResponse, 0),
	}

	// Репозиторий отдаёт записи уже отсортированными по дате и времени,
	// поэтому раскладка по группам сохраняет порядок
	for _, entry := range entries {
		item := *models.FromDomainEntry(entry, resolveName(entry.Slot.TailorID))

		switch entry.Slot.Type {
		case domain.SlotTypeConsult:
			resp.Consult = append(resp.Consult, item)
		case domain.SlotTypeMeasure:
			resp.Measure = append(resp.Measure, item)
		case domain.SlotTypeFitting:
			resp.Fitting = append(resp.Fitting, item)
		case domain.SlotTypePickup:
			resp.Pickup = append(resp.Pickup, item)
		}
	}

	resp.Total = len(entries)

	s.logger.Info("List: fetched %d appointments (consult=%d, measure=%d, fitting=%d, pickup=%d)",
		resp.Total, len(resp.Consult), len(resp.Measure), len(resp.Fitting), len(resp.Pickup))
	return resp, nil
}

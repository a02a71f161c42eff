package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
	apptStorage "github.com/m04kA/TMS-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/TMS-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/TMS-SchedulingService/pkg/ptr"
	"github.com/m04kA/TMS-SchedulingService/pkg/types"
)

type fakeApptRepo struct {
	entries    []*domain.ScheduleEntry
	entry      *domain.ScheduleEntry
	getErr     error
	lastFilter *domain.AppointmentFilter
}

func (f *fakeApptRepo) GetEntryByID(_ context.Context, _ int64) (*domain.ScheduleEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.entry, nil
}

func (f *fakeApptRepo) ListWithFilter(_ context.Context, filter domain.AppointmentFilter) ([]*domain.ScheduleEntry, error) {
	f.lastFilter = &filter
	return f.entries, nil
}

type fakeStaff struct {
	calls int
}

func (f *fakeStaff) ResolveName(_ context.Context, _ int64) string {
	f.calls++
	return "Анна Портнова"
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func entry(id int64, slotType domain.SlotType, start string) *domain.ScheduleEntry {
	return &domain.ScheduleEntry{
		Appointment: domain.Appointment{
			ID:         id,
			SlotID:     id + 100,
			CustomerID: 9,
			Status:     domain.AppointmentStatusConfirmed,
		},
		Slot: domain.WorkingSlot{
			ID:        id + 100,
			TailorID:  7,
			Date:      time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
			StartTime: types.TimeString(start),
			EndTime:   "18:00",
			Type:      slotType,
		},
	}
}

func TestGetByID(t *testing.T) {
	repo := &fakeApptRepo{entry: entry(1, domain.SlotTypeFitting, "09:00")}
	svc := NewService(repo, &fakeStaff{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Анна Портнова", resp.TailorName)
	assert.Equal(t, string(domain.SlotTypeFitting), resp.Type)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeApptRepo{getErr: apptStorage.ErrAppointmentNotFound}
	svc := NewService(repo, &fakeStaff{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestList_GroupsBySlotType(t *testing.T) {
	repo := &fakeApptRepo{
		entries: []*domain.ScheduleEntry{
			entry(1, domain.SlotTypeConsult, "09:00"),
			entry(2, domain.SlotTypeFitting, "10:00"),
			entry(3, domain.SlotTypeFitting, "11:00"),
			entry(4, domain.SlotTypePickup, "12:00"),
		},
	}
	staff := &fakeStaff{}
	svc := NewService(repo, staff, nopLogger{})

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Total)
	assert.Len(t, resp.Consult, 1)
	assert.Len(t, resp.Measure, 0)
	assert.Len(t, resp.Fitting, 2)
	assert.Len(t, resp.Pickup, 1)

	// Порядок репозитория сохраняется внутри группы
	assert.Equal(t, int64(2), resp.Fitting[0].ID)
	assert.Equal(t, int64(3), resp.Fitting[1].ID)

	// Один мастер — один вызов справочника
	assert.Equal(t, 1, staff.calls)
}

func TestList_EmptyGroupsAreNotNil(t *testing.T) {
	svc := NewService(&fakeApptRepo{}, &fakeStaff{}, nopLogger{})

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Total)
	assert.NotNil(t, resp.Consult)
	assert.NotNil(t, resp.Measure)
	assert.NotNil(t, resp.Fitting)
	assert.NotNil(t, resp.Pickup)
}

func TestList_WeekViewExpandsToMondaySunday(t *testing.T) {
	repo := &fakeApptRepo{}
	svc := NewService(repo, &fakeStaff{}, nopLogger{})

	date := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{Date: &date, Week: true})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	require.NotNil(t, repo.lastFilter.StartDate)
	require.NotNil(t, repo.lastFilter.EndDate)
	assert.Equal(t, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), *repo.lastFilter.StartDate)
	assert.Equal(t, time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC), *repo.lastFilter.EndDate)
}

func TestList_SearchAndFiltersPassedThrough(t *testing.T) {
	repo := &fakeApptRepo{}
	svc := NewService(repo, &fakeStaff{}, nopLogger{})

	req := &models.ListAppointmentsRequest{
		TailorID: ptr.Ptr(int64(7)),
		Type:     ptr.Ptr(string(domain.SlotTypeFitting)),
		Status:   ptr.Ptr(string(domain.AppointmentStatusConfirmed)),
		Search:   ptr.Ptr("Петров"),
	}

	_, err := svc.List(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, int64(7), *repo.lastFilter.TailorID)
	assert.Equal(t, domain.SlotTypeFitting, *repo.lastFilter.SlotType)
	assert.Equal(t, domain.AppointmentStatusConfirmed, *repo.lastFilter.Status)
	assert.Equal(t, "Петров", *repo.lastFilter.Search)
}

func TestList_InvalidFilter(t *testing.T) {
	svc := NewService(&fakeApptRepo{}, &fakeStaff{}, nopLogger{})

	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{Type: ptr.Ptr("delivery")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListAppointmentsRequest{Status: ptr.Ptr("archived")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

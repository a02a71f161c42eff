package book_slot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
	slotStorage "github.com/m04kA/TMS-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/TMS-SchedulingService/pkg/ptr"
)

type fakeSlotRepo struct {
	slot          *domain.WorkingSlot
	getErr        error
	updatedStatus *domain.SlotStatus
}

func (f *fakeSlotRepo) GetByID(_ context.Context, _ int64) (*domain.WorkingSlot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.slot, nil
}

func (f *fakeSlotRepo) UpdateStatus(_ context.Context, _ int64, status domain.SlotStatus, _ bool) error {
	f.updatedStatus = &status
	return nil
}

type fakeApptRepo struct {
	activeCount int
	countErr    error
	created     *domain.Appointment
}

func (f *fakeApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	out := *appt
	out.ID = 101
	f.created = &out
	return &out, nil
}

func (f *fakeApptRepo) CountActiveBySlot(_ context.Context, _ int64) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.activeCount, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func availableSlot(capacity int) *domain.WorkingSlot {
	return &domain.WorkingSlot{
		ID:       5,
		TailorID: 7,
		Capacity: capacity,
		Status:   domain.SlotStatusAvailable,
	}
}

func validRequest() *Request {
	return &Request{
		SlotID:       5,
		CustomerID:   9,
		CustomerName: ptr.Ptr("Иван Петров"),
	}
}

func TestExecute_BooksSlot(t *testing.T) {
	slotRepo := &fakeSlotRepo{slot: availableSlot(1)}
	apptRepo := &fakeApptRepo{activeCount: 0}
	uc := NewUseCase(slotRepo, apptRepo, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.AppointmentStatusPending), resp.Status)

	// Единственное место занято, слот переходит в booked
	assert.Equal(t, string(domain.SlotStatusBooked), resp.SlotStatus)
	require.NotNil(t, slotRepo.updatedStatus)
	assert.Equal(t, domain.SlotStatusBooked, *slotRepo.updatedStatus)
}

func TestExecute_CapacityRemains(t *testing.T) {
	slotRepo := &fakeSlotRepo{slot: availableSlot(3)}
	apptRepo := &fakeApptRepo{activeCount: 1}
	uc := NewUseCase(slotRepo, apptRepo, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// 2 из 3 мест заняты, слот остаётся available и статус не переписывается
	assert.Equal(t, string(domain.SlotStatusAvailable), resp.SlotStatus)
	assert.Nil(t, slotRepo.updatedStatus)
}

func TestExecute_SlotFull(t *testing.T) {
	slotRepo := &fakeSlotRepo{slot: availableSlot(2)}
	apptRepo := &fakeApptRepo{activeCount: 2}
	uc := NewUseCase(slotRepo, apptRepo, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Nil(t, apptRepo.created)
}

func TestExecute_SlotBlocked(t *testing.T) {
	slot := availableSlot(1)
	slot.ManuallyBlocked = true
	slot.Status = domain.SlotStatusBlocked

	slotRepo := &fakeSlotRepo{slot: slot}
	apptRepo := &fakeApptRepo{}
	uc := NewUseCase(slotRepo, apptRepo, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotBlocked)
	assert.Nil(t, apptRepo.created)
}

func TestExecute_SlotNotFound(t *testing.T) {
	slotRepo := &fakeSlotRepo{getErr: slotStorage.ErrSlotNotFound}
	uc := NewUseCase(slotRepo, &fakeApptRepo{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "missing slot", mutate: func(req *Request) { req.SlotID = 0 }},
		{name: "missing customer", mutate: func(req *Request) { req.CustomerID = -1 }},
		{name: "bad order id", mutate: func(req *Request) { req.OrderID = ptr.Ptr(int64(0)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(&fakeSlotRepo{}, &fakeApptRepo{}, fakeTxManager{}, nopLogger{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_CountFailure(t *testing.T) {
	slotRepo := &fakeSlotRepo{slot: availableSlot(1)}
	apptRepo := &fakeApptRepo{countErr: errors.New("query timeout")}
	uc := NewUseCase(slotRepo, apptRepo, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

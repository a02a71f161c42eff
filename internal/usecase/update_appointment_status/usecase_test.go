package update_appointment_status

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
	apptStorage "github.com/m04kA/TMS-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/TMS-SchedulingService/internal/integrations/orderservice"
	"github.com/m04kA/TMS-SchedulingService/pkg/ptr"
)

type fakeApptRepo struct {
	appt          *domain.Appointment
	getErr        error
	activeCount   int
	updatedStatus *domain.AppointmentStatus
}

func (f *fakeApptRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.appt
	return &cp, nil
}

func (f *fakeApptRepo) CountActiveBySlot(_ context.Context, _ int64) (int, error) {
	return f.activeCount, nil
}

func (f *fakeApptRepo) UpdateStatus(_ context.Context, _ int64, status domain.AppointmentStatus) error {
	f.updatedStatus = &status
	return nil
}

type fakeSlotRepo struct {
	slot          *domain.WorkingSlot
	updatedStatus *domain.SlotStatus
}

func (f *fakeSlotRepo) GetByID(_ context.Context, _ int64) (*domain.WorkingSlot, error) {
	cp := *f.slot
	return &cp, nil
}

func (f *fakeSlotRepo) UpdateStatus(_ context.Context, _ int64, status domain.SlotStatus, _ bool) error {
	f.updatedStatus = &status
	return nil
}

type fakeOrderClient struct {
	calls []string
	err   error
}

func (f *fakeOrderClient) UpdateOrderStatus(_ context.Context, _ int64, status string) error {
	f.calls = append(f.calls, status)
	return f.err
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func fixture(apptStatus domain.AppointmentStatus, slotType domain.SlotType, orderID *int64) (*fakeApptRepo, *fakeSlotRepo, *fakeOrderClient, *UseCase) {
	apptRepo := &fakeApptRepo{
		appt: &domain.Appointment{
			ID:      11,
			SlotID:  5,
			Status:  apptStatus,
			OrderID: orderID,
		},
	}
	slotRepo := &fakeSlotRepo{
		slot: &domain.WorkingSlot{
			ID:       5,
			Type:     slotType,
			Capacity: 1,
			Status:   domain.SlotStatusBooked,
		},
	}
	orderClient := &fakeOrderClient{}
	uc := NewUseCase(apptRepo, slotRepo, orderClient, fakeTxManager{}, nopLogger{})
	return apptRepo, slotRepo, orderClient, uc
}

func TestExecute_ConfirmsAppointment(t *testing.T) {
	apptRepo, _, orderClient, uc := fixture(domain.AppointmentStatusPending, domain.SlotTypeMeasure, nil)
	apptRepo.activeCount = 1

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 11, Status: "confirmed"})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	require.NotNil(t, apptRepo.updatedStatus)
	assert.Equal(t, domain.AppointmentStatusConfirmed, *apptRepo.updatedStatus)
	assert.Empty(t, orderClient.calls)
}

func TestExecute_CancellationFreesSlot(t *testing.T) {
	apptRepo, slotRepo, _, uc := fixture(domain.AppointmentStatusPending, domain.SlotTypeMeasure, nil)
	// После отмены активных записей не остаётся
	apptRepo.activeCount = 0

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 11, Status: "cancelled"})
	require.NoError(t, err)

	assert.Equal(t, string(domain.SlotStatusAvailable), resp.SlotStatus)
	require.NotNil(t, slotRepo.updatedStatus)
	assert.Equal(t, domain.SlotStatusAvailable, *slotRepo.updatedStatus)
}

func TestExecute_IllegalTransition(t *testing.T) {
	tests := []struct {
		name string
		from domain.AppointmentStatus
		to   string
	}{
		{name: "pending straight to done", from: domain.AppointmentStatusPending, to: "done"},
		{name: "done to cancelled", from: domain.AppointmentStatusDone, to: "cancelled"},
		{name: "cancelled back to pending", from: domain.AppointmentStatusCancelled, to: "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apptRepo, _, _, uc := fixture(tt.from, domain.SlotTypeMeasure, nil)

			_, err := uc.Execute(context.Background(), &Request{AppointmentID: 11, Status: tt.to})
			assert.ErrorIs(t, err, ErrIllegalTransition)
			assert.Nil(t, apptRepo.updatedStatus)
		})
	}
}

func TestExecute_DonePickupCompletesOrder(t *testing.T) {
	_, _, orderClient, uc := fixture(domain.AppointmentStatusConfirmed, domain.SlotTypePickup, ptr.Ptr(int64(77)))

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 11, Status: "done"})
	require.NoError(t, err)

	assert.Equal(t, "done", resp.Status)
	assert.Equal(t, []string{orderservice.OrderStatusCompleted}, orderClient.calls)
}

func TestExecute_DoneFittingMovesOrderInProgress(t *testing.T) {
	_, _, orderClient, uc := fixture(domain.AppointmentStatusConfirmed, domain.SlotTypeFitting, ptr.Ptr(int64(77)))

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 11, Status: "done"})
	require.NoError(t, err)

	assert.Equal(t, []string{orderservice.OrderStatusInProgress}, orderClient.calls)
}

func TestExecute_DoneConsultDoesNotTouchOrder(t *testing.T) {
	_, _, orderClient, uc := fixture(domain.AppointmentStatusConfirmed, domain.SlotTypeConsult, ptr.Ptr(int64(77)))

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 11, Status: "done"})
	require.NoError(t, err)

	assert.Empty(t, orderClient.calls)
}

func TestExecute_DoneWithoutOrderSkipsCascade(t *testing.T) {
	_, _, orderClient, uc := fixture(domain.AppointmentStatusConfirmed, domain.SlotTypePickup, nil)

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 11, Status: "done"})
	require.NoError(t, err)

	assert.Empty(t, orderClient.calls)
}

func TestExecute_CascadeFailureIsNotFatal(t *testing.T) {
	_, _, orderClient, uc := fixture(domain.AppointmentStatusConfirmed, domain.SlotTypePickup, ptr.Ptr(int64(77)))
	orderClient.err = errors.New("order service is down")

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 11, Status: "done"})
	require.NoError(t, err)
	assert.Equal(t, "done", resp.Status)
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	apptRepo := &fakeApptRepo{getErr: apptStorage.ErrAppointmentNotFound}
	uc := NewUseCase(apptRepo, &fakeSlotRepo{}, &fakeOrderClient{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 11, Status: "confirmed"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	_, _, _, uc := fixture(domain.AppointmentStatusPending, domain.SlotTypeMeasure, nil)

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 0, Status: "confirmed"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{AppointmentID: 11, Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

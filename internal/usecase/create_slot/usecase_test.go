package create_slot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-SchedulingService/internal/domain"
	"github.com/m04kA/TMS-SchedulingService/pkg/ptr"
	"github.com/m04kA/TMS-SchedulingService/pkg/types"
)

type fakeSlotRepo struct {
	existing  []*domain.WorkingSlot
	created   *domain.WorkingSlot
	createErr error
	listErr   error
}

func (f *fakeSlotRepo) Create(_ context.Context, slot *domain.WorkingSlot) (*domain.WorkingSlot, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *slot
	out.ID = 42
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	f.created = &out
	return &out, nil
}

func (f *fakeSlotRepo) GetByTailorAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.WorkingSlot, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.existing, nil
}

type fakeStaff struct{}

func (fakeStaff) ResolveName(_ context.Context, _ int64) string { return "Анна Портнова" }

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		TailorID:  7,
		Date:      time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "10:00",
		Type:      string(domain.SlotTypeFitting),
	}
}

func TestExecute_CreatesSlot(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := NewUseCase(repo, fakeStaff{}, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "Анна Портнова", resp.TailorName)
	assert.Equal(t, string(domain.SlotStatusAvailable), resp.Status)
	assert.Equal(t, domain.DefaultSlotCapacity, resp.Capacity)
	require.NotNil(t, repo.created)
	assert.Equal(t, domain.SlotTypeFitting, repo.created.Type)
}

func TestExecute_ExplicitCapacity(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := NewUseCase(repo, fakeStaff{}, fakeTxManager{}, nopLogger{})

	req := validRequest()
	req.Capacity = ptr.Ptr(3)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Capacity)
}

func TestExecute_OverlappingSlot(t *testing.T) {
	repo := &fakeSlotRepo{
		existing: []*domain.WorkingSlot{
			{ID: 1, StartTime: "09:30", EndTime: "10:30"},
		},
	}
	uc := NewUseCase(repo, fakeStaff{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOverlappingSlot)
	assert.Nil(t, repo.created)
}

func TestExecute_TouchingWindowsAllowed(t *testing.T) {
	// Слот, заканчивающийся там, где начинается новый, не конфликтует
	repo := &fakeSlotRepo{
		existing: []*domain.WorkingSlot{
			{ID: 1, StartTime: "08:00", EndTime: "09:00"},
			{ID: 2, StartTime: "10:00", EndTime: "11:00"},
		},
	}
	uc := NewUseCase(repo, fakeStaff{}, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			name:    "missing tailor",
			mutate:  func(req *Request) { req.TailorID = 0 },
			wantErr: ErrMissingTailor,
		},
		{
			name:    "end before start",
			mutate:  func(req *Request) { req.StartTime, req.EndTime = "10:00", "09:00" },
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "zero length window",
			mutate:  func(req *Request) { req.EndTime = req.StartTime },
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "missing date",
			mutate:  func(req *Request) { req.Date = time.Time{} },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown type",
			mutate:  func(req *Request) { req.Type = "delivery" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "capacity out of range",
			mutate:  func(req *Request) { req.Capacity = ptr.Ptr(0) },
			wantErr: ErrInvalidInput,
		},
		{
			name: "break outside slot",
			mutate: func(req *Request) {
				req.BreakStart = ptr.Ptr(types.TimeString("08:30"))
				req.BreakEnd = ptr.Ptr(types.TimeString("09:30"))
			},
			wantErr: ErrInvalidBreak,
		},
		{
			name: "break start without end",
			mutate: func(req *Request) {
				req.BreakStart = ptr.Ptr(types.TimeString("09:15"))
			},
			wantErr: ErrInvalidBreak,
		},
		{
			name: "inverted break",
			mutate: func(req *Request) {
				req.BreakStart = ptr.Ptr(types.TimeString("09:45"))
				req.BreakEnd = ptr.Ptr(types.TimeString("09:15"))
			},
			wantErr: ErrInvalidBreak,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeSlotRepo{}
			uc := NewUseCase(repo, fakeStaff{}, fakeTxManager{}, nopLogger{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, repo.created)
		})
	}
}

func TestExecute_BreakInsideSlot(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := NewUseCase(repo, fakeStaff{}, fakeTxManager{}, nopLogger{})

	req := validRequest()
	req.BreakStart = ptr.Ptr(types.TimeString("09:15"))
	req.BreakEnd = ptr.Ptr(types.TimeString("09:30"))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.BreakStart)
	assert.Equal(t, types.TimeString("09:15"), *resp.BreakStart)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	repo := &fakeSlotRepo{listErr: errors.New("connection reset")}
	uc := NewUseCase(repo, fakeStaff{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

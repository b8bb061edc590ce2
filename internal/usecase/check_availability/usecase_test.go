package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	catalogService "github.com/m04kA/SMC-SalonBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CountActiveInSlot(ctx context.Context, slot domain.Slot) (int, error) {
	args := m.Called(ctx, slot)
	return args.Int(0), args.Error(1)
}

func (m *mockRepo) ListActiveTimesByDate(ctx context.Context, date time.Time, stylistID *int64) ([]types.TimeString, error) {
	args := m.Called(ctx, date, stylistID)
	times, _ := args.Get(0).([]types.TimeString)
	return times, args.Error(1)
}

// fakeResolver: nil выбор -> nil, "any" -> sentinel 100, конкретный -> его ID
type fakeResolver struct {
	err error
}

func (f fakeResolver) ResolveStylist(_ context.Context, choice *domain.StylistChoice) (*int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	if choice == nil {
		return nil, nil
	}
	if choice.IsAny() {
		return ptr.Ptr(int64(100)), nil
	}
	id, _ := choice.ID()
	return &id, nil
}

var date = time.Date(2030, 2, 10, 0, 0, 0, 0, time.UTC)

func specific(id int64) *domain.StylistChoice {
	c := domain.SpecificStylist(id)
	return &c
}

func TestCheck_FreeAndTaken(t *testing.T) {
	repo := &mockRepo{}
	uc := NewUseCase(repo, fakeResolver{}, nopLogger{})

	free := domain.Slot{Date: date, Time: types.MustTimeString("10:00"), StylistID: ptr.Ptr(int64(3))}
	taken := domain.Slot{Date: date, Time: types.MustTimeString("10:30"), StylistID: ptr.Ptr(int64(3))}
	repo.On("CountActiveInSlot", mock.Anything, free).Return(0, nil)
	repo.On("CountActiveInSlot", mock.Anything, taken).Return(1, nil)

	resp, err := uc.Check(context.Background(), &Request{Date: date, Time: free.Time, Stylist: specific(3)})
	require.NoError(t, err)
	assert.True(t, resp.Available)

	resp, err = uc.Check(context.Background(), &Request{Date: date, Time: taken.Time, Stylist: specific(3)})
	require.NoError(t, err)
	assert.False(t, resp.Available)
}

func TestCheck_WithoutStylistIsGlobal(t *testing.T) {
	repo := &mockRepo{}
	uc := NewUseCase(repo, fakeResolver{}, nopLogger{})
	repo.On("CountActiveInSlot", mock.Anything, domain.Slot{Date: date, Time: types.MustTimeString("12:00")}).Return(0, nil)

	resp, err := uc.Check(context.Background(), &Request{Date: date, Time: types.MustTimeString("12:00")})

	require.NoError(t, err)
	assert.True(t, resp.Available)
	repo.AssertExpectations(t)
}

func TestCheck_Validation(t *testing.T) {
	repo := &mockRepo{}
	uc := NewUseCase(repo, fakeResolver{}, nopLogger{})

	tests := []struct {
		name  string
		req   *Request
		field string
	}{
		{name: "no date", req: &Request{Time: types.MustTimeString("10:00")}, field: "date"},
		{name: "off grid", req: &Request{Date: date, Time: types.MustTimeString("10:15")}, field: "time"},
		{name: "after closing", req: &Request{Date: date, Time: types.MustTimeString("18:30")}, field: "time"},
		{name: "no time", req: &Request{Date: date}, field: "time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Check(context.Background(), tt.req)

			require.ErrorIs(t, err, ErrInvalidInput)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.False(t, resp.Available)
		})
	}
	repo.AssertNotCalled(t, "CountActiveInSlot", mock.Anything, mock.Anything)
}

func TestCheck_BackendFailureReportsUnavailable(t *testing.T) {
	repo := &mockRepo{}
	uc := NewUseCase(repo, fakeResolver{}, nopLogger{})
	repo.On("CountActiveInSlot", mock.Anything, mock.Anything).Return(0, errors.New("connection refused"))

	resp, err := uc.Check(context.Background(), &Request{Date: date, Time: types.MustTimeString("10:00")})

	require.ErrorIs(t, err, ErrInternal)
	require.NotNil(t, resp)
	assert.False(t, resp.Available)
}

func TestCheck_StylistErrors(t *testing.T) {
	repo := &mockRepo{}

	_, err := NewUseCase(repo, fakeResolver{err: catalogService.ErrStylistNotFound}, nopLogger{}).
		Check(context.Background(), &Request{Date: date, Time: types.MustTimeString("10:00"), Stylist: specific(9)})
	assert.ErrorIs(t, err, ErrStylistNotFound)

	resp, err := NewUseCase(repo, fakeResolver{err: catalogService.ErrStylistUnavailable}, nopLogger{}).
		Check(context.Background(), &Request{Date: date, Time: types.MustTimeString("10:00"), Stylist: specific(9)})
	require.NoError(t, err)
	assert.False(t, resp.Available)
}

func TestDaySlots(t *testing.T) {
	repo := &mockRepo{}
	uc := NewUseCase(repo, fakeResolver{}, nopLogger{})
	repo.On("ListActiveTimesByDate", mock.Anything, date, ptr.Ptr(int64(3))).
		Return([]types.TimeString{types.MustTimeString("09:00"), types.MustTimeString("18:00")}, nil)

	resp, err := uc.DaySlots(context.Background(), &DaySlotsRequest{Date: date, Stylist: specific(3)})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 19)
	assert.Equal(t, "09:00", resp.Slots[0].Time.String())
	assert.False(t, resp.Slots[0].Available)
	assert.True(t, resp.Slots[1].Available)
	assert.Equal(t, "18:00", resp.Slots[18].Time.String())
	assert.False(t, resp.Slots[18].Available)
}

func TestDaySlots_UnavailableStylist(t *testing.T) {
	repo := &mockRepo{}
	uc := NewUseCase(repo, fakeResolver{err: catalogService.ErrStylistUnavailable}, nopLogger{})

	resp, err := uc.DaySlots(context.Background(), &DaySlotsRequest{Date: date, Stylist: specific(3)})

	require.NoError(t, err)
	for _, slot := range resp.Slots {
		assert.False(t, slot.Available)
	}
	repo.AssertNotCalled(t, "ListActiveTimesByDate", mock.Anything, mock.Anything, mock.Anything)
}

package check_availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-SalonBookingService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Check(ctx context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*checkAvailability.Response)
	return resp, args.Error(1)
}

func serve(h *Handler, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability?"+query, nil))
	return rec
}

func TestHandle_Available(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Check", mock.Anything, mock.MatchedBy(func(req *checkAvailability.Request) bool {
		return req.Stylist == nil && req.Time.String() == "10:00"
	})).Return(&checkAvailability.Response{
		Date:      time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		Time:      types.MustTimeString("10:00"),
		Available: true,
	}, nil)

	rec := serve(NewHandler(uc, nopLogger{}), "date=2025-02-10&time=10:00")

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Available)
	assert.Equal(t, "2025-02-10", body.Date)
	assert.Nil(t, body.StylistID)
}

func TestHandle_AnyStylistTakenSlot(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Check", mock.Anything, mock.MatchedBy(func(req *checkAvailability.Request) bool {
		return req.Stylist != nil && req.Stylist.IsAny()
	})).Return(&checkAvailability.Response{Available: false}, nil)

	rec := serve(NewHandler(uc, nopLogger{}), "date=2025-02-10&time=10:00&stylistId=any")

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Available)
}

func TestHandle_InvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{name: "no date", query: "time=10:00", field: "booking_date"},
		{name: "bad time", query: "date=2025-02-10&time=10am", field: "booking_time"},
		{name: "off grid", query: "date=2025-02-10&time=18:30", field: "booking_time"},
		{name: "bad stylist", query: "date=2025-02-10&time=10:00&stylistId=-3", field: "stylistId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			rec := serve(NewHandler(uc, nopLogger{}), tt.query)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.field, body.Field)
			uc.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_BackendFailureIsDistinctFromTaken(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Check", mock.Anything, mock.Anything).
		Return(&checkAvailability.Response{Available: false}, fmt.Errorf("%w: timeout", checkAvailability.ErrInternal))

	rec := serve(NewHandler(uc, nopLogger{}), "date=2025-02-10&time=10:00")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, codeCheckFailed, body.Error)
}

func TestHandle_StylistNotFound(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Check", mock.Anything, mock.Anything).
		Return(&checkAvailability.Response{Available: false}, checkAvailability.ErrStylistNotFound)

	rec := serve(NewHandler(uc, nopLogger{}), "date=2025-02-10&time=10:00&stylistId=99")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package list_bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingPageResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.BookingPageResponse)
	return resp, args.Error(1)
}

func serve(h *Handler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?"+query, nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(url.Values{
		"page":     {"2"},
		"pageSize": {"50"},
		"search":   {"jane"},
		"status":   {"confirmed"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 50, req.PageSize)
	assert.Equal(t, "jane", req.Search)
	require.NotNil(t, req.Status)
	assert.Equal(t, "confirmed", *req.Status)

	_, err = ToServiceRequest(url.Values{"page": {"two"}})
	assert.Error(t, err)
}

func TestHandle_OK(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, mock.MatchedBy(func(req *models.ListBookingsRequest) bool {
		return req.Page == 1 && req.Status == nil
	})).Return(&models.BookingPageResponse{
		Bookings:   []models.BookingResponse{{ID: 3, Status: "pending"}},
		Total:      1,
		Page:       1,
		PageSize:   20,
		TotalPages: 1,
	}, nil)

	rec := serve(NewHandler(svc, nopLogger{}), "page=1")

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.BookingPageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Bookings, 1)
	assert.Equal(t, int64(3), body.Bookings[0].ID)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{
			name:   "bad page",
			query:  "page=x",
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown status",
			query:  "status=archived",
			err:    fmt.Errorf("%w: %w", bookings.ErrInvalidInput, domain.NewValidationError("status", "unknown status")),
			status: http.StatusBadRequest,
		},
		{
			name:   "storage failure",
			query:  "",
			err:    fmt.Errorf("%w: connection refused", bookings.ErrInternal),
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("List", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(NewHandler(svc, nopLogger{}), tt.query)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

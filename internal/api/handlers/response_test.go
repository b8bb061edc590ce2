package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var dst struct {
		Status string `json:"status"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"confirmed","extra":1}`))
	require.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"confirmed"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "confirmed", dst.Status)
}

func TestRespondError_Body(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "слот занят")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeError(t, rec)
	assert.Equal(t, http.StatusConflict, body.Code)
	assert.Equal(t, CodeConflict, body.Error)
	assert.Equal(t, "слот занят", body.Message)
	assert.Empty(t, body.Field)
}

func TestRespondValidationError_Field(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("wrapped: %w", domain.NewValidationError("customer_email", "is required"))

	RespondValidationError(rec, err, "fallback")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, CodeValidation, body.Error)
	assert.Equal(t, "customer_email", body.Field)
	assert.Contains(t, body.Message, "is required")
}

func TestRespondValidationError_Fallback(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondValidationError(rec, fmt.Errorf("plain"), "некорректный запрос")

	body := decodeError(t, rec)
	assert.Equal(t, "некорректный запрос", body.Message)
	assert.Empty(t, body.Field)
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	MethodNotAllowed().ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/bookings", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, CodeMethodNotAllowed, decodeError(t, rec).Error)
}

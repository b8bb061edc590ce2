package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// Машинные коды ошибок в теле ответа
const (
	CodeBadRequest         = "bad_request"
	CodeValidation         = "validation_error"
	CodeNotFound           = "not_found"
	CodeConflict           = "conflict"
	CodeInvalidTransition  = "invalid_transition"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeMethodNotAllowed   = "method_not_allowed"
	CodeTooManyRequests    = "too_many_requests"
	CodeInternal           = "internal_error"
	msgInternalServerError = "внутренняя ошибка сервера"
)

// maxBodySize ограничение размера тела запроса
const maxBodySize = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
}

// DecodeJSON декодирует тело запроса, неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError отправляет ошибку с кодом по умолчанию для статуса
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondErrorCode(w, status, defaultCode(status), message, "")
}

// RespondErrorCode отправляет ошибку с явным машинным кодом и полем
func RespondErrorCode(w http.ResponseWriter, status int, code, message, field string) {
	RespondJSON(w, status, ErrorResponse{
		Code:    status,
		Message: message,
		Error:   code,
		Field:   field,
	})
}

// RespondValidationError отправляет 400 с именем поля, если ошибка содержит domain.ValidationError
func RespondValidationError(w http.ResponseWriter, err error, fallback string) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		RespondErrorCode(w, http.StatusBadRequest, CodeValidation,
			fmt.Sprintf("%s: %s", vErr.Field, vErr.Message), vErr.Field)
		return
	}
	RespondErrorCode(w, http.StatusBadRequest, CodeValidation, fallback, "")
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalServerError)
}

// MethodNotAllowed обработчик для mux.Router.MethodNotAllowedHandler
func MethodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RespondError(w, http.StatusMethodNotAllowed, "метод не поддерживается")
	})
}

// NotFound обработчик для mux.Router.NotFoundHandler
func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RespondNotFound(w, "ресурс не найден")
	})
}

func defaultCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusMethodNotAllowed:
		return CodeMethodNotAllowed
	case http.StatusTooManyRequests:
		return CodeTooManyRequests
	}
	return CodeInternal
}

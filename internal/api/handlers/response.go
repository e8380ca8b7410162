package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgConflictRetry = "бронирование конкурирует с другим запросом, повторите попытку"
	msgNoCapacity    = "нет свободных мест на выбранный интервал"
	msgBadTransition = "недопустимая смена статуса бронирования"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error         string `json:"error"`
	Field         string `json:"field,omitempty"`
	Detail        string `json:"detail,omitempty"`
	CurrentStatus string `json:"currentStatus,omitempty"`
	Retryable     bool   `json:"retryable,omitempty"`
}

// DecodeJSON читает тело запроса; неизвестные поля считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// RespondJSON пишет ответ со статусом и JSON телом
// nil тело означает пустой ответ
func RespondJSON(w http.ResponseWriter, status int, body interface{}) {
	if body == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// RespondError пишет ошибку с произвольным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict 409; retryable подсказывает клиенту, что запрос можно повторить
func RespondConflict(w http.ResponseWriter, message string, retryable bool) {
	RespondJSON(w, http.StatusConflict, ErrorResponse{Error: message, Retryable: retryable})
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondDomainError обрабатывает общую таксономию ошибок домена
// Возвращает false, если ошибка не относится к домену и её должен разобрать вызывающий
//
//	ConcurrencyConflict -> 409, retryable
//	CapacityExceeded    -> 409
//	ValidationError     -> 400 с полем
//	TransitionError     -> 409 с текущим статусом
func RespondDomainError(w http.ResponseWriter, err error) bool {
	if errors.Is(err, domain.ErrConcurrencyConflict) {
		RespondConflict(w, msgConflictRetry, true)
		return true
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		if vErr.IsCapacityExceeded() {
			RespondJSON(w, http.StatusConflict, ErrorResponse{
				Error:  msgNoCapacity,
				Field:  vErr.Field,
				Detail: vErr.Message,
			})
			return true
		}
		RespondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: vErr.Message,
			Field: vErr.Field,
		})
		return true
	}

	var tErr *domain.TransitionError
	if errors.As(err, &tErr) {
		RespondJSON(w, http.StatusConflict, ErrorResponse{
			Error:         msgBadTransition,
			Detail:        tErr.Error(),
			CurrentStatus: string(tErr.Current),
		})
		return true
	}

	return false
}

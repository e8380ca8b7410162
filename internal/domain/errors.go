package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimeRange end_time <= start_time; блокирует операцию, не повторяется
	ErrInvalidTimeRange = errors.New("end time must be after start time")

	// ErrValidation бронирование отклонено проверками (время, вместимость)
	ErrValidation = errors.New("validation failed")

	// ErrCapacityExceeded нет свободных мест на выбранный интервал (вариант ErrValidation)
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidTransition бронирование не находится в допустимом исходном статусе
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConcurrencyConflict конкурентное бронирование зафиксировалось раньше; запрос можно повторить
	ErrConcurrencyConflict = errors.New("concurrent booking conflict, retry the request")

	// ErrInvalidVehicleType неизвестный тип транспорта
	ErrInvalidVehicleType = errors.New("invalid vehicle type")
)

// Поля ValidationError
const (
	FieldTime        = "time"
	FieldSpot        = "spot"
	FieldVehicleType = "vehicle_type"
	FieldEvent       = "utsav_event"
	FieldNotes       = "notes"
)

// ValidationError структурированная ошибка проверки (поле, сообщение)
type ValidationError struct {
	Field   string
	Message string
	cause   error
}

// NewValidationError создаёт ошибку проверки
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewInvalidTimeRangeError создаёт ошибку проверки времени, которая одновременно является ErrInvalidTimeRange
func NewInvalidTimeRangeError() *ValidationError {
	return &ValidationError{Field: FieldTime, Message: ErrInvalidTimeRange.Error(), cause: ErrInvalidTimeRange}
}

// NewCapacityExceededError создаёт ошибку "нет мест", которая одновременно является ErrValidation
func NewCapacityExceededError(message string) *ValidationError {
	return &ValidationError{Field: FieldSpot, Message: message, cause: ErrCapacityExceeded}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrValidation, e.cause}
	}
	return []error{ErrValidation}
}

// IsCapacityExceeded returns true if the validation failure is a "no room" rejection
func (e *ValidationError) IsCapacityExceeded() bool {
	return errors.Is(e.cause, ErrCapacityExceeded)
}

// TransitionError переход статуса отклонён; содержит текущий статус для клиента
type TransitionError struct {
	Current BookingStatus
	Target  BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move booking to %s, current status: %s", e.Target, e.Current)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

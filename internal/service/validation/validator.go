package validation

import (
	"fmt"
	"time"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

const (
	msgStartInPast = "start time cannot be in the past"
	msgTooLong     = "maximum booking duration is 30 days"
)

// Validator проверяет интервал бронирования
// Проверки идут по порядку, возвращается первая не пройденная:
// 1. end <= start
// 2. start в прошлом
// 3. длительность меньше минимальной
// 4. длительность больше domain.MaxBookingDuration
type Validator struct {
	timeProvider TimeProvider
	minDuration  time.Duration
}

// NewValidator создает валидатор; minDuration <= 0 означает domain.MinBookingDuration
func NewValidator(timeProvider TimeProvider, minDuration time.Duration) *Validator {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	if minDuration <= 0 {
		minDuration = domain.MinBookingDuration
	}
	return &Validator{
		timeProvider: timeProvider,
		minDuration:  minDuration,
	}
}

// Validate возвращает (true, "") или (false, причина)
func (v *Validator) Validate(start, end time.Time) (bool, string) {
	if err := v.Check(start, end); err != nil {
		return false, err.Message
	}
	return true, ""
}

// Check то же, что Validate, но в виде *domain.ValidationError с полем "time"
func (v *Validator) Check(start, end time.Time) *domain.ValidationError {
	if !end.After(start) {
		return domain.NewInvalidTimeRangeError()
	}
	if start.Before(v.timeProvider.Now()) {
		return domain.NewValidationError(domain.FieldTime, msgStartInPast)
	}
	if end.Sub(start) < v.minDuration {
		return domain.NewValidationError(domain.FieldTime, minDurationMessage(v.minDuration))
	}
	if end.Sub(start) > domain.MaxBookingDuration {
		return domain.NewValidationError(domain.FieldTime, msgTooLong)
	}
	return nil
}

func minDurationMessage(d time.Duration) string {
	if d == time.Hour {
		return "minimum booking duration is 1 hour"
	}
	return fmt.Sprintf("minimum booking duration is %d minutes", int(d.Minutes()))
}

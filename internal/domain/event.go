package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/GalliPark-BookingService/pkg/types"
)

// UtsavEvent праздник/фестиваль на парковке: временные цены и вместимость на один день
// Для пары (spot, event_date) может существовать только одно событие
type UtsavEvent struct {
	ID          int64
	SpotID      int64
	Name        string
	Description string

	EventDate time.Time        // только дата
	StartTime types.TimeString // время суток начала
	EndTime   types.TimeString // время суток окончания

	TemporaryCapacityTwoWheeler  int
	TemporaryCapacityFourWheeler int

	TemporaryPriceTwoWheeler  decimal.Decimal
	TemporaryPriceFourWheeler decimal.Decimal

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the event interval: event date combined with its wall-clock times in loc
func (e *UtsavEvent) Window(loc *time.Location) (time.Time, time.Time, error) {
	start, err := e.StartTime.On(e.EventDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("event id=%d start time: %w", e.ID, err)
	}
	end, err := e.EndTime.On(e.EventDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("event id=%d end time: %w", e.ID, err)
	}
	if !e.EndTime.IsAfter(e.StartTime) {
		return time.Time{}, time.Time{}, fmt.Errorf("event id=%d: window %s-%s is empty", e.ID, e.StartTime, e.EndTime)
	}
	return start, end, nil
}

// TemporaryPriceFor returns the event hourly price for the vehicle type
func (e *UtsavEvent) TemporaryPriceFor(vt VehicleType) (decimal.Decimal, error) {
	switch vt {
	case VehicleTwoWheeler:
		return e.TemporaryPriceTwoWheeler, nil
	case VehicleFourWheeler:
		return e.TemporaryPriceFourWheeler, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidVehicleType, vt)
	}
}

// TemporaryCapacityFor returns the event capacity for the vehicle type
// Проверка доступности использует статическую вместимость парковки, а не эту
func (e *UtsavEvent) TemporaryCapacityFor(vt VehicleType) (int, error) {
	switch vt {
	case VehicleTwoWheeler:
		return e.TemporaryCapacityTwoWheeler, nil
	case VehicleFourWheeler:
		return e.TemporaryCapacityFourWheeler, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidVehicleType, vt)
	}
}

// IsOngoing returns true if now falls inside the event window
func (e *UtsavEvent) IsOngoing(now time.Time, loc *time.Location) bool {
	start, end, err := e.Window(loc)
	if err != nil {
		return false
	}
	return !now.Before(start) && !now.After(end)
}

// CheckLinkTo проверяет, что событие можно явно привязать к бронированию на парковке spotID
func (e *UtsavEvent) CheckLinkTo(spotID int64) *ValidationError {
	if e.SpotID != spotID {
		return NewValidationError(FieldEvent, "event does not belong to this parking spot")
	}
	if !e.IsActive {
		return NewValidationError(FieldEvent, "event is not active")
	}
	return nil
}

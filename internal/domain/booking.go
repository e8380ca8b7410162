package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Valid returns true if the status is one of the known statuses
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// transitionSources допустимые исходные статусы для каждого целевого статуса
var transitionSources = map[BookingStatus][]BookingStatus{
	StatusActive:    {StatusPending},
	StatusCompleted: {StatusActive},
	StatusCancelled: {StatusPending, StatusActive},
}

// TransitionSources returns the statuses a booking may be in to move to target
func TransitionSources(target BookingStatus) []BookingStatus {
	return transitionSources[target]
}

// transitionTargets порядок перечисления целевых статусов
var transitionTargets = []BookingStatus{StatusActive, StatusCompleted, StatusCancelled}

// AllowedTransitions returns the statuses reachable from the current one
func (s BookingStatus) AllowedTransitions() []BookingStatus {
	var targets []BookingStatus
	for _, target := range transitionTargets {
		for _, from := range transitionSources[target] {
			if from == s {
				targets = append(targets, target)
				break
			}
		}
	}
	return targets
}

// Booking represents a parking booking made by a driver
type Booking struct {
	ID           int64
	DriverID     int64
	SpotID       int64
	UtsavEventID *int64 // явная привязка к событию (nil после удаления события)
	VehicleType  VehicleType
	StartTime    time.Time
	EndTime      time.Time
	TotalPrice   decimal.Decimal // всегда считается на сервере
	Status       BookingStatus
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoldsCapacity returns true if the booking occupies a place at the spot
func (b *Booking) HoldsCapacity() bool {
	return b.Status == StatusPending || b.Status == StatusActive
}

// CanTransitionTo returns true if the booking may move to the target status
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	for _, from := range transitionSources[target] {
		if b.Status == from {
			return true
		}
	}
	return false
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// DriverBookingsFilter фильтр истории бронирований водителя
type DriverBookingsFilter struct {
	DriverID int64
	Status   *BookingStatus // опционально
}

// SpotBookingsFilter фильтр бронирований парковки для владельца
type SpotBookingsFilter struct {
	SpotID          int64      // Обязательный параметр
	From            *time.Time // бронирования, заканчивающиеся после From (опционально)
	To              *time.Time // бронирования, начинающиеся до To (опционально)
	Status          *BookingStatus
	IncludeInactive bool // включать завершённые и отменённые
}

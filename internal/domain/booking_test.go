package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPending, StatusActive, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusCancelled, true},
		{StatusActive, StatusActive, false},
		{StatusActive, StatusCompleted, true},
		{StatusActive, StatusCancelled, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusActive, false},
		{StatusCancelled, StatusActive, false},
		{StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.want, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_AllowedTransitions(t *testing.T) {
	assert.Equal(t, []BookingStatus{StatusActive, StatusCancelled}, StatusPending.AllowedTransitions())
	assert.Equal(t, []BookingStatus{StatusCompleted, StatusCancelled}, StatusActive.AllowedTransitions())
	assert.Empty(t, StatusCompleted.AllowedTransitions())
	assert.Empty(t, StatusCancelled.AllowedTransitions())
}

func TestBooking_HoldsCapacity(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).HoldsCapacity())
	assert.True(t, (&Booking{Status: StatusActive}).HoldsCapacity())
	assert.False(t, (&Booking{Status: StatusCompleted}).HoldsCapacity())
	assert.False(t, (&Booking{Status: StatusCancelled}).HoldsCapacity())
}

func TestValidationError_Taxonomy(t *testing.T) {
	var timeErr error = NewValidationError(FieldTime, "Start time cannot be in the past")
	var capErr error = NewCapacityExceededError("No available two-wheeler spots for the requested time period")

	assert.True(t, errors.Is(timeErr, ErrValidation))
	assert.False(t, errors.Is(timeErr, ErrCapacityExceeded))

	assert.True(t, errors.Is(capErr, ErrValidation))
	assert.True(t, errors.Is(capErr, ErrCapacityExceeded))
	assert.False(t, errors.Is(capErr, ErrConcurrencyConflict))

	var ve *ValidationError
	assert.True(t, errors.As(capErr, &ve))
	assert.Equal(t, FieldSpot, ve.Field)
	assert.True(t, ve.IsCapacityExceeded())
}

func TestTransitionError_CarriesCurrentStatus(t *testing.T) {
	err := &TransitionError{Current: StatusPending, Target: StatusCompleted}

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "current status: pending")
}

func TestParseVehicleType(t *testing.T) {
	vt, err := ParseVehicleType("four_wheeler")
	assert.NoError(t, err)
	assert.Equal(t, VehicleFourWheeler, vt)

	_, err = ParseVehicleType("truck")
	assert.ErrorIs(t, err, ErrInvalidVehicleType)
}

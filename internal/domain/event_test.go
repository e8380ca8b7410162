package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtsavEvent_Window(t *testing.T) {
	loc := time.FixedZone("NPT", 5*3600+45*60)
	event := &UtsavEvent{
		ID:        1,
		EventDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		StartTime: "12:00",
		EndTime:   "20:00",
	}

	start, end, err := event.Window(loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 8, 20, 12, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 8, 20, 20, 0, 0, 0, loc), end)
	assert.True(t, event.IsOngoing(time.Date(2026, 8, 20, 15, 0, 0, 0, loc), loc))
	assert.False(t, event.IsOngoing(time.Date(2026, 8, 21, 15, 0, 0, 0, loc), loc))
}

func TestUtsavEvent_WindowInvalidTime(t *testing.T) {
	event := &UtsavEvent{ID: 2, EventDate: time.Now(), StartTime: "bad", EndTime: "20:00"}

	_, _, err := event.Window(time.UTC)
	assert.Error(t, err)
}

func TestUtsavEvent_WindowEmpty(t *testing.T) {
	event := &UtsavEvent{ID: 3, EventDate: time.Now(), StartTime: "20:00", EndTime: "12:00"}

	_, _, err := event.Window(time.UTC)
	assert.Error(t, err)
	assert.False(t, event.IsOngoing(time.Now(), time.UTC))
}

func TestParkingSpot_PerVehicleLookups(t *testing.T) {
	spot := &ParkingSpot{
		CapacityTwoWheeler:      5,
		CapacityFourWheeler:     0,
		PricePerHourTwoWheeler:  decimal.NewFromInt(50),
		PricePerHourFourWheeler: decimal.NewFromInt(120),
	}

	c, err := spot.CapacityFor(VehicleFourWheeler)
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	p, err := spot.PricePerHourFor(VehicleTwoWheeler)
	require.NoError(t, err)
	assert.True(t, p.Equal(decimal.NewFromInt(50)))

	_, err = spot.CapacityFor("bus")
	assert.ErrorIs(t, err, ErrInvalidVehicleType)
}

func TestAvailability_Counters(t *testing.T) {
	a := &Availability{Capacity: 5, Overlapping: 7}
	assert.Equal(t, 0, a.AvailableCapacity())
	assert.True(t, a.IsFull())
	assert.Equal(t, 100.0, a.OccupancyRate())

	b := &Availability{Capacity: 4, Overlapping: 1}
	assert.Equal(t, 3, b.AvailableCapacity())
	assert.Equal(t, 25.0, b.OccupancyRate())

	noPlaces := &Availability{}
	assert.True(t, noPlaces.IsFull())
	assert.Equal(t, 100.0, noPlaces.OccupancyRate())
}

func TestUtsavEvent_CheckLinkTo(t *testing.T) {
	event := &UtsavEvent{ID: 3, SpotID: 7, IsActive: true}
	assert.Nil(t, event.CheckLinkTo(7))

	verr := event.CheckLinkTo(8)
	require.NotNil(t, verr)
	assert.Equal(t, FieldEvent, verr.Field)

	event.IsActive = false
	verr = event.CheckLinkTo(7)
	require.NotNil(t, verr)
	assert.Equal(t, "event is not active", verr.Message)
}

package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
	spotRepo "github.com/m04kA/GalliPark-BookingService/internal/infra/storage/spot"
	"github.com/m04kA/GalliPark-BookingService/internal/service/availability"
	"github.com/m04kA/GalliPark-BookingService/internal/service/validation"
)

type spots map[int64]*domain.ParkingSpot

func (s spots) GetByID(_ context.Context, id int64) (*domain.ParkingSpot, error) {
	spot, ok := s[id]
	if !ok {
		return nil, spotRepo.ErrSpotNotFound
	}
	return spot, nil
}

type fixedCount struct {
	count int
	err   error
}

func (c fixedCount) CountOverlapping(context.Context, int64, domain.VehicleType, time.Time, time.Time, *int64) (int, error) {
	return c.count, c.err
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var now = time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)

func newUseCase(counter fixedCount) *UseCase {
	repo := spots{
		7: {ID: 7, CapacityTwoWheeler: 5, CapacityFourWheeler: 2, IsActive: true},
		8: {ID: 8, CapacityTwoWheeler: 5, IsActive: false},
		9: {ID: 9, CapacityTwoWheeler: 3, IsActive: true},
	}
	return NewUseCase(repo,
		availability.NewChecker(counter, nopLogger{}),
		validation.NewValidator(fixedClock{now: now}, time.Hour),
		nopLogger{})
}

func req(spotID int64, start, end time.Time) *Request {
	return &Request{UserID: 11, SpotID: spotID, VehicleType: domain.VehicleTwoWheeler, StartTime: start, EndTime: end}
}

func TestExecute_Available(t *testing.T) {
	uc := newUseCase(fixedCount{count: 3})

	resp, err := uc.Execute(context.Background(), req(7, now.Add(time.Hour), now.Add(3*time.Hour)))

	require.NoError(t, err)
	assert.True(t, resp.IsAvailable)
	assert.Empty(t, resp.Message)
	assert.Equal(t, 5, resp.Capacity)
	assert.Equal(t, 2, resp.AvailableCapacity)
	assert.Equal(t, 60.0, resp.OccupancyRate)
}

func TestExecute_Full(t *testing.T) {
	uc := newUseCase(fixedCount{count: 5})

	resp, err := uc.Execute(context.Background(), req(7, now.Add(time.Hour), now.Add(3*time.Hour)))

	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)
	assert.Equal(t, "No available two-wheeler spots for the requested time period", resp.Message)
	assert.Equal(t, 0, resp.AvailableCapacity)
}

func TestExecute_NoPlacesForVehicleTypeIsFullyOccupied(t *testing.T) {
	uc := newUseCase(fixedCount{})
	r := req(9, now.Add(time.Hour), now.Add(3*time.Hour))
	r.VehicleType = domain.VehicleFourWheeler

	resp, err := uc.Execute(context.Background(), r)

	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)
	assert.Equal(t, 0, resp.Capacity)
	assert.Equal(t, 0, resp.AvailableCapacity)
	assert.Equal(t, 100.0, resp.OccupancyRate)
}

func TestExecute_InvalidIntervalIsNegativeAnswer(t *testing.T) {
	uc := newUseCase(fixedCount{})

	resp, err := uc.Execute(context.Background(), req(7, now.Add(time.Hour), now.Add(90*time.Minute)))

	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)
	assert.Equal(t, "minimum booking duration is 1 hour", resp.Message)
}

func TestExecute_InactiveSpot(t *testing.T) {
	uc := newUseCase(fixedCount{})

	resp, err := uc.Execute(context.Background(), req(8, now.Add(time.Hour), now.Add(3*time.Hour)))

	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)
}

func TestExecute_Errors(t *testing.T) {
	uc := newUseCase(fixedCount{err: errors.New("db down")})

	_, err := uc.Execute(context.Background(), req(404, now.Add(time.Hour), now.Add(3*time.Hour)))
	assert.ErrorIs(t, err, ErrSpotNotFound)

	_, err = uc.Execute(context.Background(), req(7, now.Add(time.Hour), now.Add(3*time.Hour)))
	assert.ErrorIs(t, err, ErrInternal)

	bad := req(7, now.Add(time.Hour), now.Add(3*time.Hour))
	bad.VehicleType = "bus"
	_, err = uc.Execute(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ParkingSpot парковочное место, которое сдаёт владелец
type ParkingSpot struct {
	ID          int64
	OwnerID     int64
	Latitude    float64
	Longitude   float64
	Address     string
	City        string
	Description string

	CapacityTwoWheeler  int
	CapacityFourWheeler int // 0 = только двухколёсный транспорт

	PricePerHourTwoWheeler  decimal.Decimal
	PricePerHourFourWheeler decimal.Decimal

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CapacityFor returns the static capacity for the vehicle type
func (s *ParkingSpot) CapacityFor(vt VehicleType) (int, error) {
	switch vt {
	case VehicleTwoWheeler:
		return s.CapacityTwoWheeler, nil
	case VehicleFourWheeler:
		return s.CapacityFourWheeler, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidVehicleType, vt)
	}
}

// PricePerHourFor returns the standard hourly price for the vehicle type
func (s *ParkingSpot) PricePerHourFor(vt VehicleType) (decimal.Decimal, error) {
	switch vt {
	case VehicleTwoWheeler:
		return s.PricePerHourTwoWheeler, nil
	case VehicleFourWheeler:
		return s.PricePerHourFourWheeler, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidVehicleType, vt)
	}
}

// IsOwnedBy returns true if the user owns the spot
func (s *ParkingSpot) IsOwnedBy(userID int64) bool {
	return s.OwnerID == userID
}

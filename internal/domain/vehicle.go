package domain

import "fmt"

// VehicleType тип транспортного средства
type VehicleType string

const (
	VehicleTwoWheeler  VehicleType = "two_wheeler"
	VehicleFourWheeler VehicleType = "four_wheeler"
)

// ParseVehicleType разбирает тип транспорта из строки запроса
func ParseVehicleType(s string) (VehicleType, error) {
	vt := VehicleType(s)
	if !vt.Valid() {
		return "", fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidVehicleType, s)
	}
	return vt, nil
}

func (vt VehicleType) Valid() bool {
	return vt == VehicleTwoWheeler || vt == VehicleFourWheeler
}

// Label человекочитаемое название для сообщений об отказе
func (vt VehicleType) Label() string {
	switch vt {
	case VehicleTwoWheeler:
		return "two-wheeler"
	case VehicleFourWheeler:
		return "four-wheeler"
	default:
		return string(vt)
	}
}

package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/GalliPark-BookingService/internal/api/handlers"
	"github.com/m04kA/GalliPark-BookingService/internal/domain"
	checkAvailability "github.com/m04kA/GalliPark-BookingService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SpotID            int64   `json:"spotId"`
	VehicleType       string  `json:"vehicleType"`
	IsAvailable       bool    `json:"isAvailable"`
	Message           string  `json:"message,omitempty"`
	Overlapping       int     `json:"overlapping"`
	Capacity          int     `json:"capacity"`
	AvailableCapacity int     `json:"availableCapacity"`
	OccupancyRate     float64 `json:"occupancyRate"`
}

// ToUseCaseRequest собирает запрос из query: start_time, end_time (RFC3339), vehicle_type
func ToUseCaseRequest(r *http.Request, spotID, userID int64) (*checkAvailability.Request, error) {
	start, err := handlers.QueryTime(r, "start_time")
	if err != nil {
		return nil, err
	}
	end, err := handlers.QueryTime(r, "end_time")
	if err != nil {
		return nil, err
	}
	if start == nil || end == nil {
		return nil, errors.New("start_time and end_time are required")
	}

	vehicleType, err := domain.ParseVehicleType(r.URL.Query().Get("vehicle_type"))
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		UserID:      userID,
		SpotID:      spotID,
		VehicleType: vehicleType,
		StartTime:   *start,
		EndTime:     *end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		SpotID:            resp.SpotID,
		VehicleType:       string(resp.VehicleType),
		IsAvailable:       resp.IsAvailable,
		Message:           resp.Message,
		Overlapping:       resp.Overlapping,
		Capacity:          resp.Capacity,
		AvailableCapacity: resp.AvailableCapacity,
		OccupancyRate:     resp.OccupancyRate,
	}
}

package quote_price

import (
	"fmt"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SpotID <= 0 {
		return fmt.Errorf("%w: spotID must be positive", ErrInvalidInput)
	}

	if req.UtsavEventID != nil && *req.UtsavEventID <= 0 {
		return fmt.Errorf("%w: utsavEventID must be positive", ErrInvalidInput)
	}

	if !req.VehicleType.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidVehicleType)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	return nil
}

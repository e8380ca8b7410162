package create_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DriverID <= 0 {
		return fmt.Errorf("%w: driverID must be positive", ErrInvalidInput)
	}

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

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

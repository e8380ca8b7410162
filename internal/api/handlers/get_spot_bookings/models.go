package get_spot_bookings

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/GalliPark-BookingService/internal/api/handlers"
	"github.com/m04kA/GalliPark-BookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// from/to в RFC3339 задают период пересечения
func ToServiceRequest(r *http.Request, spotID, userID int64) (*models.GetSpotBookingsRequest, error) {
	req := &models.GetSpotBookingsRequest{
		UserID: userID,
		SpotID: spotID,
	}

	from, err := handlers.QueryTime(r, "from")
	if err != nil {
		return nil, err
	}
	to, err := handlers.QueryTime(r, "to")
	if err != nil {
		return nil, err
	}
	req.From, req.To = from, to

	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

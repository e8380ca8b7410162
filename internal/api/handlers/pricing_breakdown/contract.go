package pricing_breakdown

import (
	"context"

	"github.com/m04kA/GalliPark-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	PricingBreakdown(ctx context.Context, bookingID, userID int64) (*models.PricingBreakdownResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

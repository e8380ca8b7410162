package get_driver_bookings

import (
	"context"

	"github.com/m04kA/GalliPark-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetDriverBookings(ctx context.Context, req *models.GetDriverBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

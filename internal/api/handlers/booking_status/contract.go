package booking_status

import (
	"context"

	"github.com/m04kA/GalliPark-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Activate(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error)
	Complete(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error)
	Cancel(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

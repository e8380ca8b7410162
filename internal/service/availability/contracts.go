package availability

import (
	"context"
	"time"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

// BookingCounter считает бронирования, занимающие место на парковке
type BookingCounter interface {
	CountOverlapping(ctx context.Context, spotID int64, vehicleType domain.VehicleType, start, end time.Time, excludeID *int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

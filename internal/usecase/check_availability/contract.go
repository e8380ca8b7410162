package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

// SpotRepository интерфейс репозитория парковок
type SpotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingSpot, error)
}

// AvailabilityChecker проверка вместимости
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, spot *domain.ParkingSpot, start, end time.Time, vehicleType domain.VehicleType, excludeID *int64) (*domain.Availability, error)
}

// TimeValidator проверка интервала
type TimeValidator interface {
	Validate(start, end time.Time) (bool, string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

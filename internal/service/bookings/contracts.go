package bookings

import (
	"context"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByDriver(ctx context.Context, filter domain.DriverBookingsFilter) ([]*domain.Booking, error)
	GetBySpotWithFilter(ctx context.Context, filter domain.SpotBookingsFilter) ([]*domain.Booking, error)
	TransitionStatus(ctx context.Context, id int64, from []domain.BookingStatus, target domain.BookingStatus) (*domain.Booking, error)
}

// SpotRepository интерфейс репозитория парковок
type SpotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingSpot, error)
}

// PriceCalculator пересчёт цены для детализации
type PriceCalculator interface {
	CalculateForSpot(ctx context.Context, spot *domain.ParkingSpot, draft domain.BookingDraft) (*domain.PricingResult, error)
}

// Metrics счётчики переходов статусов
type Metrics interface {
	IncBookingTransition(to, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

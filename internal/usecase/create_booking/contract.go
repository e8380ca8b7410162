package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// SpotRepository интерфейс репозитория парковок
type SpotRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.ParkingSpot, error)
}

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.UtsavEvent, error)
}

// AvailabilityChecker проверка вместимости (internal/service/availability)
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, spot *domain.ParkingSpot, start, end time.Time, vehicleType domain.VehicleType, excludeID *int64) (*domain.Availability, error)
}

// PriceCalculator расчёт цены (internal/service/pricing)
type PriceCalculator interface {
	CalculateForSpot(ctx context.Context, spot *domain.ParkingSpot, draft domain.BookingDraft) (*domain.PricingResult, error)
}

// TimeValidator проверка интервала (internal/service/validation)
type TimeValidator interface {
	Check(start, end time.Time) *domain.ValidationError
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	IsDriver(ctx context.Context, userID int64) (bool, error)
}

// IdempotencyStore хранилище ключей Idempotency-Key
type IdempotencyStore interface {
	Reserve(ctx context.Context, driverID int64, key string) (int64, error)
	Complete(ctx context.Context, driverID int64, key string, bookingID int64) error
	Release(ctx context.Context, driverID int64, key string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные счётчики
type Metrics interface {
	IncBookingCreated(vehicleType string)
	IncBookingRejected(reason string)
	IncBookingConflict()
	IncEventSurcharge()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

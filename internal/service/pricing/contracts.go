package pricing

import (
	"context"
	"time"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

// SpotRepository интерфейс репозитория парковок
type SpotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingSpot, error)
}

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.UtsavEvent, error)
	ListActiveForSpotOnDate(ctx context.Context, spotID int64, date time.Time) ([]*domain.UtsavEvent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

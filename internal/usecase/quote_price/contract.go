package quote_price

import (
	"context"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

// PriceCalculator калькулятор цен
type PriceCalculator interface {
	CalculatePrice(ctx context.Context, draft domain.BookingDraft) (*domain.PricingResult, error)
}

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.UtsavEvent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

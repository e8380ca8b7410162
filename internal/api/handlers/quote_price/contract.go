package quote_price

import (
	"context"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
	quotePrice "github.com/m04kA/GalliPark-BookingService/internal/usecase/quote_price"
)

type QuotePriceUseCase interface {
	Execute(ctx context.Context, req *quotePrice.Request) (*domain.PricingResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

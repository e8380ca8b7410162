package quote_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
	eventRepo "github.com/m04kA/GalliPark-BookingService/internal/infra/storage/event"
	"github.com/m04kA/GalliPark-BookingService/internal/service/pricing"
)

// UseCase расчёт цены без создания бронирования
type UseCase struct {
	calculator PriceCalculator
	eventRepo  EventRepository
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(calculator PriceCalculator, eventRepo EventRepository, logger Logger) *UseCase {
	return &UseCase{
		calculator: calculator,
		eventRepo:  eventRepo,
		logger:     logger,
	}
}

// Execute считает цену черновика; ничего не сохраняет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.PricingResult, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		return nil, err
	}

	// Привязка к событию проверяется так же, как при создании бронирования
	if req.UtsavEventID != nil {
		if err := uc.checkEventLink(ctx, req); err != nil {
			return nil, err
		}
	}

	result, err := uc.calculator.CalculatePrice(ctx, req.ToDraft())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTimeRange):
			uc.logger.Warn("QuotePrice: spot=%d invalid time range", req.SpotID)
			return nil, domain.NewInvalidTimeRangeError()
		case errors.Is(err, pricing.ErrSpotNotFound):
			return nil, ErrSpotNotFound
		case errors.Is(err, pricing.ErrEventNotFound):
			return nil, ErrEventNotFound
		default:
			uc.logger.Error("QuotePrice: failed for spot id=%d: %v", req.SpotID, err)
			return nil, fmt.Errorf("%w: calculate price: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("QuotePrice: spot=%d, %s, total=%s", req.SpotID, req.VehicleType, result.TotalPrice)
	return result, nil
}

func (uc *UseCase) checkEventLink(ctx context.Context, req *Request) error {
	event, err := uc.eventRepo.GetByID(ctx, *req.UtsavEventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			uc.logger.Warn("QuotePrice: event id=%d not found", *req.UtsavEventID)
			return ErrEventNotFound
		}
		uc.logger.Error("QuotePrice: failed to get event id=%d: %v", *req.UtsavEventID, err)
		return fmt.Errorf("%w: get event: %v", ErrInternal, err)
	}

	if verr := event.CheckLinkTo(req.SpotID); verr != nil {
		uc.logger.Warn("QuotePrice: event id=%d rejected for spot id=%d: %s", event.ID, req.SpotID, verr.Message)
		return verr
	}
	return nil
}

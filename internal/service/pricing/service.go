package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
	eventRepo "github.com/m04kA/GalliPark-BookingService/internal/infra/storage/event"
	spotRepo "github.com/m04kA/GalliPark-BookingService/internal/infra/storage/spot"
)

var nanosPerHour = decimal.NewFromInt(int64(time.Hour))

// Calculator считает стоимость бронирования
// Вся денежная арифметика в decimal; округление до 2 знаков только в конце
type Calculator struct {
	spotRepo  SpotRepository
	eventRepo EventRepository
	loc       *time.Location
	logger    Logger
}

// NewCalculator создает калькулятор цен
// loc определяет календарную дату бронирования и окна событий
func NewCalculator(spotRepo SpotRepository, eventRepo EventRepository, loc *time.Location, logger Logger) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	return &Calculator{
		spotRepo:  spotRepo,
		eventRepo: eventRepo,
		loc:       loc,
		logger:    logger,
	}
}

// CalculatePrice загружает парковку и считает цену черновика бронирования
func (c *Calculator) CalculatePrice(ctx context.Context, draft domain.BookingDraft) (*domain.PricingResult, error) {
	if !draft.EndTime.After(draft.StartTime) {
		return nil, domain.ErrInvalidTimeRange
	}

	spot, err := c.spotRepo.GetByID(ctx, draft.SpotID)
	if err != nil {
		if errors.Is(err, spotRepo.ErrSpotNotFound) {
			c.logger.Warn("CalculatePrice: spot id=%d not found", draft.SpotID)
			return nil, ErrSpotNotFound
		}
		c.logger.Error("CalculatePrice: failed to get spot id=%d: %v", draft.SpotID, err)
		return nil, fmt.Errorf("%w: CalculatePrice - get spot: %w", ErrInternal, err)
	}

	return c.CalculateForSpot(ctx, spot, draft)
}

// CalculateForSpot считает цену для уже загруженной парковки
//
// 1. Почасовая ставка: временная цена явно привязанного события, иначе цена парковки
// 2. base = ставка × длительность в часах
// 3. Если на интервал приходится активное событие парковки, надбавка 20% от base (на весь интервал)
// 4. base, надбавка и итог округляются до 2 знаков независимо
func (c *Calculator) CalculateForSpot(ctx context.Context, spot *domain.ParkingSpot, draft domain.BookingDraft) (*domain.PricingResult, error) {
	if !draft.EndTime.After(draft.StartTime) {
		return nil, domain.ErrInvalidTimeRange
	}

	rate, fromEvent, err := c.hourlyRate(ctx, spot, draft)
	if err != nil {
		return nil, err
	}

	nanos := decimal.NewFromInt(int64(draft.EndTime.Sub(draft.StartTime)))
	hours := nanos.Div(nanosPerHour)
	// умножаем до деления, чтобы дробные часы (1/3 ч) не теряли точность
	base := rate.Mul(nanos).Div(nanosPerHour)

	overlapping, err := c.FindOverlappingEvent(ctx, spot.ID, draft.StartTime, draft.EndTime)
	if err != nil {
		c.logger.Error("CalculateForSpot: resolver failed for spot id=%d: %v", spot.ID, err)
		return nil, err
	}

	surcharge := decimal.Zero
	if overlapping != nil {
		surcharge = base.Mul(domain.EventSurchargeRate)
	}
	total := base.Add(surcharge)

	result := &domain.PricingResult{
		DurationHours:     hours,
		HourlyRate:        rate,
		BasePrice:         base.Round(domain.CurrencyPlaces),
		EventSurcharge:    surcharge.Round(domain.CurrencyPlaces),
		TotalPrice:        total.Round(domain.CurrencyPlaces),
		OverlappingEvent:  overlapping,
		SurchargeApplied:  overlapping != nil,
		RateFromEventLink: fromEvent,
	}

	if overlapping != nil {
		c.logger.Info("CalculateForSpot: spot=%d, %s, event id=%d overlaps, base=%s, surcharge=%s, total=%s",
			spot.ID, draft.VehicleType, overlapping.ID, result.BasePrice, result.EventSurcharge, result.TotalPrice)
	} else {
		c.logger.Info("CalculateForSpot: spot=%d, %s, base=%s, total=%s",
			spot.ID, draft.VehicleType, result.BasePrice, result.TotalPrice)
	}

	return result, nil
}

// hourlyRate определяет источник ставки
// Явная привязка к событию переопределяет цену парковки независимо от того, попадает ли интервал в окно события
func (c *Calculator) hourlyRate(ctx context.Context, spot *domain.ParkingSpot, draft domain.BookingDraft) (decimal.Decimal, bool, error) {
	if draft.UtsavEventID == nil {
		rate, err := spot.PricePerHourFor(draft.VehicleType)
		if err != nil {
			return decimal.Zero, false, err
		}
		return rate, false, nil
	}

	event, err := c.eventRepo.GetByID(ctx, *draft.UtsavEventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			c.logger.Warn("CalculateForSpot: linked event id=%d not found", *draft.UtsavEventID)
			return decimal.Zero, false, ErrEventNotFound
		}
		c.logger.Error("CalculateForSpot: failed to get event id=%d: %v", *draft.UtsavEventID, err)
		return decimal.Zero, false, fmt.Errorf("%w: hourlyRate - get event: %w", ErrInternal, err)
	}

	rate, err := event.TemporaryPriceFor(draft.VehicleType)
	if err != nil {
		return decimal.Zero, false, err
	}
	return rate, true, nil
}

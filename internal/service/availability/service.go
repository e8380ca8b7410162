package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

// Checker проверяет, есть ли свободное место на парковке для типа транспорта
//
// Считаются бронирования той же парковки и того же типа транспорта в статусах pending/active,
// пересекающие [start, end). Вместимость берётся статическая, из парковки;
// временная вместимость события в проверке не участвует.
//
// Сама по себе проверка не защищает от гонки: create_booking вызывает её
// внутри транзакции, удерживающей блокировку строки парковки
type Checker struct {
	bookings BookingCounter
	logger   Logger
}

// NewChecker создает проверку доступности
func NewChecker(bookings BookingCounter, logger Logger) *Checker {
	return &Checker{
		bookings: bookings,
		logger:   logger,
	}
}

// CheckAvailability возвращает решение по интервалу; Reason заполнен только при отказе
func (c *Checker) CheckAvailability(
	ctx context.Context,
	spot *domain.ParkingSpot,
	start, end time.Time,
	vehicleType domain.VehicleType,
	excludeID *int64,
) (*domain.Availability, error) {
	capacity, err := spot.CapacityFor(vehicleType)
	if err != nil {
		return nil, err
	}

	overlapping, err := c.bookings.CountOverlapping(ctx, spot.ID, vehicleType, start, end, excludeID)
	if err != nil {
		c.logger.Error("CheckAvailability: failed to count bookings for spot=%d: %v", spot.ID, err)
		return nil, fmt.Errorf("%w: CheckAvailability - count overlapping: %w", ErrInternal, err)
	}

	result := &domain.Availability{
		Overlapping: overlapping,
		Capacity:    capacity,
	}
	result.Allowed = !result.IsFull()

	if !result.Allowed {
		result.Reason = NoSpotsMessage(vehicleType)
		c.logger.Warn("CheckAvailability: spot=%d %s full, %d/%d taken", spot.ID, vehicleType, overlapping, capacity)
		return result, nil
	}

	c.logger.Info("CheckAvailability: spot=%d %s available, %d/%d taken", spot.ID, vehicleType, overlapping, capacity)
	return result, nil
}

// NoSpotsMessage сообщение отказа для типа транспорта
func NoSpotsMessage(vehicleType domain.VehicleType) string {
	return fmt.Sprintf("No available %s spots for the requested time period", vehicleType.Label())
}

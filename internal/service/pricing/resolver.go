package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

// FindOverlappingEvent ищет активное событие парковки, пересекающее интервал [start, end).
// Кандидаты выбираются по дате: event_date должна совпадать с календарной датой start в часовом поясе сервиса.
// Возвращает первое найденное событие (порядок репозитория) или nil
func (c *Calculator) FindOverlappingEvent(ctx context.Context, spotID int64, start, end time.Time) (*domain.UtsavEvent, error) {
	localStart := start.In(c.loc)
	date := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), 0, 0, 0, 0, c.loc)

	events, err := c.eventRepo.ListActiveForSpotOnDate(ctx, spotID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlappingEvent - list events: %w", ErrInternal, err)
	}

	for _, event := range events {
		eventStart, eventEnd, err := event.Window(c.loc)
		if err != nil {
			c.logger.Warn("FindOverlappingEvent: skip event id=%d with broken window: %v", event.ID, err)
			continue
		}
		if domain.Overlaps(start, end, eventStart, eventEnd) {
			return event, nil
		}
	}

	return nil, nil
}

package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	spotRepo "github.com/m04kA/GalliPark-BookingService/internal/infra/storage/spot"
	"github.com/m04kA/GalliPark-BookingService/internal/service/events/models"
)

// Service сервис для чтения событий (utsav) парковки
type Service struct {
	spotRepo  SpotRepository
	eventRepo EventRepository
	clock     TimeProvider
	loc       *time.Location
	logger    Logger
}

// NewService создает новый экземпляр сервиса событий
// loc часовой пояс, в котором заданы окна событий
func NewService(spotRepo SpotRepository, eventRepo EventRepository, clock TimeProvider, loc *time.Location, logger Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		spotRepo:  spotRepo,
		eventRepo: eventRepo,
		clock:     clock,
		loc:       loc,
		logger:    logger,
	}
}

// ListSpotEvents возвращает активные события парковки, отсортированные по дате
func (s *Service) ListSpotEvents(ctx context.Context, spotID int64) (*models.EventListResponse, error) {
	s.logger.Info("ListSpotEvents: spot=%d", spotID)

	if _, err := s.spotRepo.GetByID(ctx, spotID); err != nil {
		if errors.Is(err, spotRepo.ErrSpotNotFound) {
			s.logger.Warn("ListSpotEvents: spot id=%d not found", spotID)
			return nil, ErrSpotNotFound
		}
		s.logger.Error("ListSpotEvents: failed to get spot id=%d: %v", spotID, err)
		return nil, fmt.Errorf("%w: ListSpotEvents - get spot: %v", ErrInternal, err)
	}

	events, err := s.eventRepo.ListActiveBySpot(ctx, spotID)
	if err != nil {
		s.logger.Error("ListSpotEvents: failed to list events for spot id=%d: %v", spotID, err)
		return nil, fmt.Errorf("%w: ListSpotEvents - list events: %v", ErrInternal, err)
	}

	s.logger.Info("ListSpotEvents: spot=%d, found %d events", spotID, len(events))
	return models.FromDomainEventList(spotID, events, s.clock.Now(), s.loc), nil
}

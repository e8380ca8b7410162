package list_spot_events

import (
	"context"

	"github.com/m04kA/GalliPark-BookingService/internal/service/events/models"
)

type EventService interface {
	ListSpotEvents(ctx context.Context, spotID int64) (*models.EventListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

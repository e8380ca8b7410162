package list_spot_events

import (
	"errors"
	"net/http"

	"github.com/m04kA/GalliPark-BookingService/internal/api/handlers"
	"github.com/m04kA/GalliPark-BookingService/internal/service/events"
)

const (
	msgInvalidSpotID = "некорректный ID парковки"
	msgSpotNotFound  = "парковка не найдена"
)

type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/spots/{spotId}/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spotID, err := handlers.PathID(r, "spotId")
	if err != nil {
		h.logger.Warn("GET /spots/{id}/events - Invalid spot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpotID)
		return
	}

	result, err := h.service.ListSpotEvents(r.Context(), spotID)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrSpotNotFound):
			h.logger.Warn("GET /spots/{id}/events - Spot not found: spot_id=%d", spotID)
			handlers.RespondNotFound(w, msgSpotNotFound)

		default:
			h.logger.Error("GET /spots/{id}/events - Failed: spot_id=%d, error=%v", spotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spots/{id}/events - OK: spot_id=%d, count=%d", spotID, len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, result)
}

package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/GalliPark-BookingService/internal/api/handlers"
	"github.com/m04kA/GalliPark-BookingService/internal/api/middleware"
	checkAvailability "github.com/m04kA/GalliPark-BookingService/internal/usecase/check_availability"
)

const (
	msgInvalidSpotID = "некорректный ID парковки"
	msgInvalidParams = "ожидаются start_time, end_time в RFC3339 и vehicle_type (two_wheeler или four_wheeler)"
	msgSpotNotFound  = "парковка не найдена"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/spots/{spotId}/availability
// Query params: start_time, end_time, vehicle_type (обязательны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spotID, err := handlers.PathID(r, "spotId")
	if err != nil {
		h.logger.Warn("GET /spots/{id}/availability - Invalid spot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpotID)
		return
	}

	// Публичный маршрут: пользователь может быть не указан
	userID, _ := middleware.GetUserID(r.Context())

	useCaseReq, err := ToUseCaseRequest(r, spotID, userID)
	if err != nil {
		h.logger.Warn("GET /spots/{id}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrSpotNotFound):
			h.logger.Warn("GET /spots/{id}/availability - Spot not found: spot_id=%d", spotID)
			handlers.RespondNotFound(w, msgSpotNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /spots/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /spots/{id}/availability - Failed: spot_id=%d, error=%v", spotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spots/{id}/availability - OK: spot_id=%d, available=%t", spotID, result.IsAvailable)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/GalliPark-BookingService/internal/api/handlers"
	"github.com/m04kA/GalliPark-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/GalliPark-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/GalliPark-BookingService/pkg/ptr"
)

// IdempotencyKeyHeader заголовок для безопасного повтора создания
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 128

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные параметры бронирования"
	msgInvalidKey         = "некорректный заголовок Idempotency-Key"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotDriver          = "бронировать могут только водители"
	msgSpotNotFound       = "парковка не найдена"
	msgEventNotFound      = "событие не найдено"
	msgInProgress         = "запрос с этим Idempotency-Key ещё выполняется"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	driverID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	key := r.Header.Get(IdempotencyKeyHeader)
	if len(key) > maxIdempotencyKeyLength {
		h.logger.Warn("POST /bookings - Idempotency key too long: driver_id=%d", driverID)
		handlers.RespondBadRequest(w, msgInvalidKey)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(driverID, key)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("POST /bookings - Rejected: driver_id=%d, spot_id=%d, reason=%v", driverID, req.SpotID, err)
			return
		}

		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: driver_id=%d, error=%v", driverID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, createBooking.ErrNotDriver):
			h.logger.Warn("POST /bookings - Not a driver: user_id=%d", driverID)
			handlers.RespondForbidden(w, msgNotDriver)

		case errors.Is(err, createBooking.ErrSpotNotFound):
			h.logger.Warn("POST /bookings - Spot not found: spot_id=%d", req.SpotID)
			handlers.RespondNotFound(w, msgSpotNotFound)

		case errors.Is(err, createBooking.ErrEventNotFound):
			h.logger.Warn("POST /bookings - Event not found: spot_id=%d, event_id=%d", req.SpotID, ptr.Deref(req.UtsavEventID, 0))
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, createBooking.ErrRequestInProgress):
			h.logger.Warn("POST /bookings - Idempotency key in progress: driver_id=%d", driverID)
			handlers.RespondConflict(w, msgInProgress, true)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: driver_id=%d, spot_id=%d, error=%v",
				driverID, req.SpotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, driver_id=%d, spot_id=%d, replayed=%t",
		result.Booking.ID, driverID, req.SpotID, result.Replayed)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}

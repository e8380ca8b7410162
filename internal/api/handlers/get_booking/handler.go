package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/GalliPark-BookingService/internal/api/handlers"
	"github.com/m04kA/GalliPark-BookingService/internal/api/middleware"
	"github.com/m04kA/GalliPark-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
// Видно водителю и владельцу парковки; в ответе список допустимых действий
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, userID)
	if err != nil {
		h.respondError(w, err, bookingID, userID)
		return
	}

	resp := FromServiceResponse(booking)
	h.logger.Info("GET /bookings/{id} - booking_id=%d, status=%s, actions=%v", bookingID, booking.Status, resp.AllowedActions)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) respondError(w http.ResponseWriter, err error, bookingID, userID int64) {
	if errors.Is(err, bookings.ErrBookingNotFound) {
		h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}
	if errors.Is(err, bookings.ErrAccessDenied) {
		h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	h.logger.Error("GET /bookings/{id} - booking_id=%d: %v", bookingID, err)
	handlers.RespondInternalError(w)
}

package booking_status

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/GalliPark-BookingService/internal/api/handlers"
	"github.com/m04kA/GalliPark-BookingService/internal/api/middleware"
	"github.com/m04kA/GalliPark-BookingService/internal/service/bookings"
	"github.com/m04kA/GalliPark-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
)

type transitionFunc func(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error)

// Handler смена статуса бронирования: activate, complete или cancel
type Handler struct {
	transition transitionFunc
	route      string
	logger     Logger
}

// NewActivateHandler POST /api/v1/bookings/{bookingId}/activate
func NewActivateHandler(service BookingService, logger Logger) *Handler {
	return &Handler{transition: service.Activate, route: "POST /bookings/{id}/activate", logger: logger}
}

// NewCompleteHandler POST /api/v1/bookings/{bookingId}/complete
func NewCompleteHandler(service BookingService, logger Logger) *Handler {
	return &Handler{transition: service.Complete, route: "POST /bookings/{id}/complete", logger: logger}
}

// NewCancelHandler POST /api/v1/bookings/{bookingId}/cancel
func NewCancelHandler(service BookingService, logger Logger) *Handler {
	return &Handler{transition: service.Cancel, route: "POST /bookings/{id}/cancel", logger: logger}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", h.route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", h.route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	booking, err := h.transition(r.Context(), bookingID, userID)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("%s - Rejected: booking_id=%d, reason=%v", h.route, bookingID, err)
			return
		}

		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%d", h.route, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: booking_id=%d, user_id=%d", h.route, bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("%s - Failed: booking_id=%d, error=%v", h.route, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Done: booking_id=%d, status=%s, user_id=%d", h.route, bookingID, booking.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

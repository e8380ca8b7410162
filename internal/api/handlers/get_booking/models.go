package get_booking

import (
	"github.com/m04kA/GalliPark-BookingService/internal/domain"
	"github.com/m04kA/GalliPark-BookingService/internal/service/bookings/models"
)

// actionByTarget имя действия жизненного цикла для целевого статуса
var actionByTarget = map[domain.BookingStatus]string{
	domain.StatusActive:    "activate",
	domain.StatusCompleted: "complete",
	domain.StatusCancelled: "cancel",
}

// BookingDetailsResponse бронирование и доступные над ним действия
type BookingDetailsResponse struct {
	models.BookingResponse
	AllowedActions []string `json:"allowedActions"`
}

// FromServiceResponse дополняет ответ сервиса списком действий
func FromServiceResponse(booking *models.BookingResponse) *BookingDetailsResponse {
	resp := &BookingDetailsResponse{
		BookingResponse: *booking,
		AllowedActions:  []string{},
	}

	for _, target := range domain.BookingStatus(booking.Status).AllowedTransitions() {
		resp.AllowedActions = append(resp.AllowedActions, actionByTarget[target])
	}

	return resp
}

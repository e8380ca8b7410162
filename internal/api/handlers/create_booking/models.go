package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
	"github.com/m04kA/GalliPark-BookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/GalliPark-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/GalliPark-BookingService/pkg/ptr"
)

// CreateBookingRequest HTTP request model
// Цены в запросе нет: неизвестные поля (например totalPrice) отклоняются при декодировании
type CreateBookingRequest struct {
	SpotID       int64   `json:"spotId"`
	UtsavEventID *int64  `json:"utsavEventId,omitempty"`
	VehicleType  string  `json:"vehicleType"` // "two_wheeler" | "four_wheeler"
	StartTime    string  `json:"startTime"`   // RFC3339
	EndTime      string  `json:"endTime"`     // RFC3339
	Notes        *string `json:"notes,omitempty"`
}

// PricingResponse цена, посчитанная при создании
type PricingResponse struct {
	HourlyRate            string `json:"hourlyRate"`
	BasePrice             string `json:"basePrice"`
	EventSurchargePercent int    `json:"eventSurchargePercent"`
	EventSurchargeAmount  string `json:"eventSurchargeAmount"`
	TotalPrice            string `json:"totalPrice"`
	OverlappingEventID    *int64 `json:"overlappingEventId,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking  *models.BookingResponse `json:"booking"`
	Pricing  *PricingResponse        `json:"pricing,omitempty"`
	Replayed bool                    `json:"replayed,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(driverID int64, idempotencyKey string) (*createBooking.Request, error) {
	vehicleType, err := domain.ParseVehicleType(r.VehicleType)
	if err != nil {
		return nil, err
	}

	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse startTime: %w", err)
	}

	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("parse endTime: %w", err)
	}

	return &createBooking.Request{
		DriverID:       driverID,
		SpotID:         r.SpotID,
		UtsavEventID:   r.UtsavEventID,
		VehicleType:    vehicleType,
		StartTime:      start,
		EndTime:        end,
		Notes:          r.Notes,
		IdempotencyKey: idempotencyKey,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	out := &CreateBookingResponse{
		Booking:  models.FromDomainBooking(resp.Booking),
		Replayed: resp.Replayed,
	}

	if p := resp.Pricing; p != nil {
		out.Pricing = &PricingResponse{
			HourlyRate:            models.Money(p.HourlyRate),
			BasePrice:             models.Money(p.BasePrice),
			EventSurchargePercent: p.SurchargePercent(),
			EventSurchargeAmount:  models.Money(p.EventSurcharge),
			TotalPrice:            models.Money(p.TotalPrice),
		}
		if p.OverlappingEvent != nil {
			out.Pricing.OverlappingEventID = ptr.Ptr(p.OverlappingEvent.ID)
		}
	}

	return out
}

package quote_price

import (
	"fmt"
	"time"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
	"github.com/m04kA/GalliPark-BookingService/internal/service/bookings/models"
	quotePrice "github.com/m04kA/GalliPark-BookingService/internal/usecase/quote_price"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	SpotID       int64  `json:"spotId"`
	UtsavEventID *int64 `json:"utsavEventId,omitempty"`
	VehicleType  string `json:"vehicleType"`
	StartTime    string `json:"startTime"` // RFC3339
	EndTime      string `json:"endTime"`   // RFC3339
}

// QuoteResponse HTTP response model; суммы строками с 2 знаками
type QuoteResponse struct {
	SpotID                int64                            `json:"spotId"`
	VehicleType           string                           `json:"vehicleType"`
	DurationHours         string                           `json:"durationHours"`
	HourlyRate            string                           `json:"hourlyRate"`
	BasePrice             string                           `json:"basePrice"`
	EventSurchargePercent int                              `json:"eventSurchargePercent"`
	EventSurchargeAmount  string                           `json:"eventSurchargeAmount"`
	TotalPrice            string                           `json:"totalPrice"`
	OverlappingEvent      *models.OverlappingEventResponse `json:"overlappingEvent,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest() (*quotePrice.Request, error) {
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

	return &quotePrice.Request{
		SpotID:       r.SpotID,
		UtsavEventID: r.UtsavEventID,
		VehicleType:  vehicleType,
		StartTime:    start,
		EndTime:      end,
	}, nil
}

// FromPricingResult конвертирует результат расчёта
func FromPricingResult(req *quotePrice.Request, p *domain.PricingResult) *QuoteResponse {
	resp := &QuoteResponse{
		SpotID:                req.SpotID,
		VehicleType:           string(req.VehicleType),
		DurationHours:         models.Money(p.DurationHours),
		HourlyRate:            models.Money(p.HourlyRate),
		BasePrice:             models.Money(p.BasePrice),
		EventSurchargePercent: p.SurchargePercent(),
		EventSurchargeAmount:  models.Money(p.EventSurcharge),
		TotalPrice:            models.Money(p.TotalPrice),
	}

	if p.OverlappingEvent != nil {
		resp.OverlappingEvent = &models.OverlappingEventResponse{
			ID:   p.OverlappingEvent.ID,
			Name: p.OverlappingEvent.Name,
			Date: p.OverlappingEvent.EventDate.Format(domain.DateFormat),
		}
	}

	return resp
}

package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetDriverBookingsRequest запрос на получение истории бронирований водителя
type GetDriverBookingsRequest struct {
	RequesterID int64   `json:"-"`
	DriverID    int64   `json:"driverId"`
	Status      *string `json:"status,omitempty"`
}

// GetSpotBookingsRequest запрос владельца на получение бронирований парковки
type GetSpotBookingsRequest struct {
	UserID          int64      `json:"userId"`
	SpotID          int64      `json:"spotId"`
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить завершённые и отменённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSpotBookingsRequest) ToDomainFilter() (domain.SpotBookingsFilter, error) {
	filter := domain.SpotBookingsFilter{
		SpotID:          r.SpotID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
// Денежные суммы передаются строками с 2 знаками после запятой
type BookingResponse struct {
	ID           int64     `json:"id"`
	DriverID     int64     `json:"driverId"`
	SpotID       int64     `json:"spotId"`
	UtsavEventID *int64    `json:"utsavEventId,omitempty"`
	VehicleType  string    `json:"vehicleType"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	TotalPrice   string    `json:"totalPrice"` // "216.00"
	Status       string    `json:"status"`
	Notes        *string   `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// OverlappingEventResponse событие, из-за которого применена надбавка
type OverlappingEventResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"` // "2026-08-20"
}

// PricingBreakdownResponse детализация цены бронирования
type PricingBreakdownResponse struct {
	BookingID             int64                     `json:"bookingId"`
	VehicleType           string                    `json:"vehicleType"`
	DurationHours         string                    `json:"durationHours"`
	HourlyRate            string                    `json:"hourlyRate"`
	BasePrice             string                    `json:"basePrice"`
	EventSurchargePercent int                       `json:"eventSurchargePercent"`
	EventSurchargeAmount  string                    `json:"eventSurchargeAmount"`
	TotalPrice            string                    `json:"totalPrice"`
	StoredTotalPrice      string                    `json:"storedTotalPrice"`
	OverlappingEvent      *OverlappingEventResponse `json:"overlappingEvent,omitempty"`
}

// Методы конвертации

// Money форматирует денежную сумму
func Money(d decimal.Decimal) string {
	return d.StringFixed(domain.CurrencyPlaces)
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:           b.ID,
		DriverID:     b.DriverID,
		SpotID:       b.SpotID,
		UtsavEventID: b.UtsavEventID,
		VehicleType:  string(b.VehicleType),
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		TotalPrice:   Money(b.TotalPrice),
		Status:       string(b.Status),
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromPricingResult собирает детализацию из пересчитанной цены
func FromPricingResult(b *domain.Booking, p *domain.PricingResult) *PricingBreakdownResponse {
	resp := &PricingBreakdownResponse{
		BookingID:             b.ID,
		VehicleType:           string(b.VehicleType),
		DurationHours:         Money(p.DurationHours),
		HourlyRate:            Money(p.HourlyRate),
		BasePrice:             Money(p.BasePrice),
		EventSurchargePercent: p.SurchargePercent(),
		EventSurchargeAmount:  Money(p.EventSurcharge),
		TotalPrice:            Money(p.TotalPrice),
		StoredTotalPrice:      Money(b.TotalPrice),
	}

	if p.OverlappingEvent != nil {
		resp.OverlappingEvent = &OverlappingEventResponse{
			ID:   p.OverlappingEvent.ID,
			Name: p.OverlappingEvent.Name,
			Date: p.OverlappingEvent.EventDate.Format(domain.DateFormat),
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

package models

import (
	"time"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

// EventResponse событие парковки с временными ценами и вместимостью
type EventResponse struct {
	ID          int64  `json:"id"`
	SpotID      int64  `json:"spotId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	EventDate   string `json:"eventDate"` // "2026-08-20"
	StartTime   string `json:"startTime"` // "12:00"
	EndTime     string `json:"endTime"`   // "20:00"

	TemporaryCapacityTwoWheeler  int    `json:"temporaryCapacityTwoWheeler"`
	TemporaryCapacityFourWheeler int    `json:"temporaryCapacityFourWheeler"`
	TemporaryPriceTwoWheeler     string `json:"temporaryPriceTwoWheeler"`
	TemporaryPriceFourWheeler    string `json:"temporaryPriceFourWheeler"`

	IsOngoing bool `json:"isOngoing"`
}

// EventListResponse ответ со списком событий
type EventListResponse struct {
	SpotID int64           `json:"spotId"`
	Events []EventResponse `json:"events"`
}

// FromDomainEvent конвертирует domain событие в response
// now и loc нужны для признака isOngoing
func FromDomainEvent(e *domain.UtsavEvent, now time.Time, loc *time.Location) EventResponse {
	return EventResponse{
		ID:                           e.ID,
		SpotID:                       e.SpotID,
		Name:                         e.Name,
		Description:                  e.Description,
		EventDate:                    e.EventDate.Format(domain.DateFormat),
		StartTime:                    e.StartTime.String(),
		EndTime:                      e.EndTime.String(),
		TemporaryCapacityTwoWheeler:  e.TemporaryCapacityTwoWheeler,
		TemporaryCapacityFourWheeler: e.TemporaryCapacityFourWheeler,
		TemporaryPriceTwoWheeler:     e.TemporaryPriceTwoWheeler.StringFixed(domain.CurrencyPlaces),
		TemporaryPriceFourWheeler:    e.TemporaryPriceFourWheeler.StringFixed(domain.CurrencyPlaces),
		IsOngoing:                    e.IsOngoing(now, loc),
	}
}

// FromDomainEventList конвертирует список событий
func FromDomainEventList(spotID int64, events []*domain.UtsavEvent, now time.Time, loc *time.Location) *EventListResponse {
	resp := &EventListResponse{
		SpotID: spotID,
		Events: make([]EventResponse, 0, len(events)),
	}
	for _, e := range events {
		resp.Events = append(resp.Events, FromDomainEvent(e, now, loc))
	}
	return resp
}

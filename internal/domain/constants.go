package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Business rules
const (
	MinBookingDuration = time.Hour
	MaxBookingDuration = 30 * 24 * time.Hour // вместе с NUMERIC(14,2) исключает переполнение total_price
	MaxNotesLength     = 1000
)

// EventSurchargeRate надбавка 20% к базовой цене при пересечении с активным событием
var EventSurchargeRate = decimal.RequireFromString("0.20")

// EventSurchargePercent то же значение в процентах для ответов API
const EventSurchargePercent = 20

// CurrencyPlaces количество знаков после запятой в денежных суммах
const CurrencyPlaces = 2

// Time format constants
const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = time.RFC3339
)

// CapacityStatuses статусы бронирований, которые занимают место на парковке
var CapacityStatuses = []BookingStatus{
	StatusPending,
	StatusActive,
}

// InactiveStatuses статусы, которые не показываются владельцу без IncludeInactive
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingResult результат расчёта цены бронирования
// Все суммы округлены до 2 знаков; промежуточные вычисления не округляются
type PricingResult struct {
	DurationHours     decimal.Decimal
	HourlyRate        decimal.Decimal
	BasePrice         decimal.Decimal
	EventSurcharge    decimal.Decimal
	TotalPrice        decimal.Decimal
	OverlappingEvent  *UtsavEvent // первое активное событие, пересекающее интервал
	SurchargeApplied  bool
	RateFromEventLink bool // почасовая ставка взята из явно привязанного события
}

// SurchargePercent returns 20 when the surcharge applies, otherwise 0
func (r *PricingResult) SurchargePercent() int {
	if r.SurchargeApplied {
		return EventSurchargePercent
	}
	return 0
}

// BookingDraft черновик бронирования для расчёта цены
type BookingDraft struct {
	SpotID       int64
	UtsavEventID *int64
	VehicleType  VehicleType
	StartTime    time.Time
	EndTime      time.Time
}

package quote_price

import (
	"time"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

// Request черновик бронирования, для которого нужна цена
type Request struct {
	SpotID       int64
	UtsavEventID *int64
	VehicleType  domain.VehicleType
	StartTime    time.Time
	EndTime      time.Time
}

// ToDraft конвертирует запрос в черновик для калькулятора
func (r *Request) ToDraft() domain.BookingDraft {
	return domain.BookingDraft{
		SpotID:       r.SpotID,
		UtsavEventID: r.UtsavEventID,
		VehicleType:  r.VehicleType,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
	}
}

package create_booking

import (
	"time"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
// Цена в запросе отсутствует: она всегда считается на сервере
type Request struct {
	DriverID       int64              // ID водителя (из X-User-ID)
	SpotID         int64              // ID парковки
	UtsavEventID   *int64             // Явная привязка к событию (опционально)
	VehicleType    domain.VehicleType // two_wheeler | four_wheeler
	StartTime      time.Time
	EndTime        time.Time
	Notes          *string // Заметки (опционально)
	IdempotencyKey string  // Заголовок Idempotency-Key (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
	Pricing *domain.PricingResult // nil, если ответ повторён по Idempotency-Key
	// Replayed бронирование было создано ранее запросом с тем же Idempotency-Key
	Replayed bool
}

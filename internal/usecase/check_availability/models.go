package check_availability

import (
	"time"

	"github.com/m04kA/GalliPark-BookingService/internal/domain"
)

// Request модель запроса предварительной проверки доступности
type Request struct {
	UserID      int64 // ID пользователя (для логирования, не влияет на результат)
	SpotID      int64
	VehicleType domain.VehicleType
	StartTime   time.Time
	EndTime     time.Time
}

// Response результат проверки; носит рекомендательный характер до создания бронирования
type Response struct {
	SpotID            int64
	VehicleType       domain.VehicleType
	IsAvailable       bool
	Message           string // причина отказа (время или вместимость)
	Overlapping       int
	Capacity          int
	AvailableCapacity int
	OccupancyRate     float64 // процент занятых мест, 0-100
}

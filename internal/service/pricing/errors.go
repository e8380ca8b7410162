package pricing

import "errors"

var (
	// ErrSpotNotFound возвращается, когда парковка не найдена
	ErrSpotNotFound = errors.New("pricing: parking spot not found")

	// ErrEventNotFound возвращается, когда явно указанное событие не найдено
	ErrEventNotFound = errors.New("pricing: utsav event not found")

	// ErrInternal возвращается при внутренних ошибках расчёта
	ErrInternal = errors.New("pricing: internal error")
)

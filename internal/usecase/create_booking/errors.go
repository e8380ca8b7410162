package create_booking

import "errors"

var (
	// ErrNotDriver возвращается, когда пользователь не зарегистрирован как водитель
	ErrNotDriver = errors.New("create_booking: only drivers can create bookings")

	// ErrSpotNotFound возвращается, когда парковка не найдена
	ErrSpotNotFound = errors.New("create_booking: parking spot not found")

	// ErrEventNotFound возвращается, когда указанное событие не найдено
	ErrEventNotFound = errors.New("create_booking: utsav event not found")

	// ErrRequestInProgress возвращается, когда запрос с тем же Idempotency-Key ещё выполняется
	ErrRequestInProgress = errors.New("create_booking: request with this idempotency key is in progress")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Причины отказа для метрик
const (
	reasonInvalidInput = "invalid_input"
	reasonNotDriver    = "not_driver"
	reasonTime         = "time"
	reasonSpot         = "spot"
	reasonEvent        = "event"
	reasonCapacity     = "capacity"
	reasonConflict     = "conflict"
	reasonInternal     = "internal"
)

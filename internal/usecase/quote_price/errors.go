package quote_price

import "errors"

var (
	// ErrSpotNotFound возвращается, когда парковка не найдена
	ErrSpotNotFound = errors.New("quote_price: parking spot not found")

	// ErrEventNotFound возвращается, когда указанное событие не найдено
	ErrEventNotFound = errors.New("quote_price: utsav event not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_price: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_price: internal error")
)

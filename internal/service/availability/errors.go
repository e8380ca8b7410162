package availability

import "errors"

var (
	// ErrInternal возвращается при ошибках подсчёта бронирований
	ErrInternal = errors.New("availability: internal error")
)

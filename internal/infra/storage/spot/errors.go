package spot

import "errors"

var (
	// ErrSpotNotFound возвращается, когда парковка не найдена
	ErrSpotNotFound = errors.New("spot.repository: parking spot not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("spot.repository: failed to build query")

	// ErrScanRow возвращается при ошибке выполнения запроса или сканирования строки
	ErrScanRow = errors.New("spot.repository: failed to scan row")
)

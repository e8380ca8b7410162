package idempotency

import "errors"

var (
	// ErrRequestInProgress первый запрос с этим ключом ещё выполняется
	ErrRequestInProgress = errors.New("idempotency: request with this key is still in progress")

	// ErrStore возвращается при ошибках Redis
	ErrStore = errors.New("idempotency: store error")
)

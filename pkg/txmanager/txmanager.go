package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/GalliPark-BookingService/pkg/dbmetrics"
)

var (
	// ErrSerializationFailure транзакция не смогла сериализоваться с конкурентной (SQLSTATE 40001/40P01)
	// Повтор всей транзакции может завершиться успешно
	ErrSerializationFailure = errors.New("txmanager: serialization failure")

	// ErrTransaction возвращается при ошибках начала/фиксации транзакции
	ErrTransaction = errors.New("txmanager: transaction error")
)

const (
	sqlStateSerializationFailure pq.ErrorCode = "40001"
	sqlStateDeadlockDetected     pq.ErrorCode = "40P01"
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакции, передавая её через контекст
type TransactionManager struct {
	db TxBeginner
}

func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции READ COMMITTED: каждый запрос видит данные,
// зафиксированные до его начала, в том числе после ожидания блокировки строки.
// Дедлок и конфликт сериализации возвращаются как ErrSerializationFailure
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует уже открытую транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return classify(fmt.Errorf("%w: begin: %v", ErrTransaction, err), err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return classify(err, err)
	}

	if err = tx.Commit(); err != nil {
		return classify(fmt.Errorf("%w: commit: %v", ErrTransaction, err), err)
	}

	return nil
}

// classify добавляет ErrSerializationFailure к ошибке, если причина в конфликте сериализации
func classify(wrapped error, cause error) error {
	if IsSerializationFailure(cause) {
		return fmt.Errorf("%w: %v", ErrSerializationFailure, wrapped)
	}
	return wrapped
}

// IsSerializationFailure проверяет, что ошибка вызвана конфликтом сериализации или дедлоком
func IsSerializationFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrSerializationFailure) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == sqlStateSerializationFailure || pqErr.Code == sqlStateDeadlockDetected
	}

	return false
}

package idempotency

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "gallipark:idempotency"
	placeholder = "0"
)

// Store хранит соответствие Idempotency-Key -> ID созданного бронирования
//
// Reserve ставит заглушку SETNX с TTL. Пока заглушка на месте, повторный запрос
// получает ErrRequestInProgress; после Complete повтор возвращает ID бронирования
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает хранилище ключей идемпотентности
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Reserve резервирует ключ. Возвращает 0, если ключ новый, иначе ID ранее созданного бронирования
func (s *Store) Reserve(ctx context.Context, driverID int64, key string) (int64, error) {
	k := redisKey(driverID, key)

	ok, err := s.client.SetNX(ctx, k, placeholder, s.ttl).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: Reserve - setnx: %v", ErrStore, err)
	}
	if ok {
		return 0, nil
	}

	val, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// ключ истёк между SETNX и GET
		return 0, ErrRequestInProgress
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Reserve - get: %v", ErrStore, err)
	}
	if val == placeholder {
		return 0, ErrRequestInProgress
	}

	bookingID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: Reserve - corrupted value %q", ErrStore, val)
	}
	return bookingID, nil
}

// Complete запоминает ID созданного бронирования под ключом
func (s *Store) Complete(ctx context.Context, driverID int64, key string, bookingID int64) error {
	if err := s.client.Set(ctx, redisKey(driverID, key), strconv.FormatInt(bookingID, 10), s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Complete - set: %v", ErrStore, err)
	}
	return nil
}

// Release снимает резерв, если создание не удалось, чтобы клиент мог повторить запрос
func (s *Store) Release(ctx context.Context, driverID int64, key string) error {
	if err := s.client.Del(ctx, redisKey(driverID, key)).Err(); err != nil {
		return fmt.Errorf("%w: Release - del: %v", ErrStore, err)
	}
	return nil
}

func redisKey(driverID int64, key string) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, driverID, key)
}

// NoopStore используется, когда Redis выключен: ключи идемпотентности игнорируются
type NoopStore struct{}

func (NoopStore) Reserve(context.Context, int64, string) (int64, error) { return 0, nil }
func (NoopStore) Complete(context.Context, int64, string, int64) error  { return nil }
func (NoopStore) Release(context.Context, int64, string) error          { return nil }

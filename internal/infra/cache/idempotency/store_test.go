package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ttl = 24 * time.Hour

func TestReserve_NewKey(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, ttl)

	mock.ExpectSetNX("gallipark:idempotency:11:abc", "0", ttl).SetVal(true)

	id, err := store.Reserve(context.Background(), 11, "abc")

	require.NoError(t, err)
	assert.Equal(t, int64(0), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserve_ReplayReturnsBookingID(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, ttl)

	mock.ExpectSetNX("gallipark:idempotency:11:abc", "0", ttl).SetVal(false)
	mock.ExpectGet("gallipark:idempotency:11:abc").SetVal("42")

	id, err := store.Reserve(context.Background(), 11, "abc")

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserve_InProgress(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, ttl)

	mock.ExpectSetNX("gallipark:idempotency:11:abc", "0", ttl).SetVal(false)
	mock.ExpectGet("gallipark:idempotency:11:abc").SetVal("0")

	_, err := store.Reserve(context.Background(), 11, "abc")

	assert.ErrorIs(t, err, ErrRequestInProgress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserve_RedisDown(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, ttl)

	mock.ExpectSetNX("gallipark:idempotency:11:abc", "0", ttl).SetErr(errors.New("connection refused"))

	_, err := store.Reserve(context.Background(), 11, "abc")

	assert.ErrorIs(t, err, ErrStore)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCompleteAndRelease(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, ttl)

	mock.ExpectSet("gallipark:idempotency:11:abc", "42", ttl).SetVal("OK")
	mock.ExpectDel("gallipark:idempotency:11:xyz").SetVal(1)

	assert.NoError(t, store.Complete(context.Background(), 11, "abc", 42))
	assert.NoError(t, store.Release(context.Background(), 11, "xyz"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoopStore(t *testing.T) {
	var store NoopStore
	id, err := store.Reserve(context.Background(), 1, "k")
	assert.NoError(t, err)
	assert.Zero(t, id)
	assert.NoError(t, store.Complete(context.Background(), 1, "k", 5))
	assert.NoError(t, store.Release(context.Background(), 1, "k"))
}

package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubTx struct {
	DBExecutor
}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubExecutor struct {
	DBExecutor
	name string
}

func TestGetExecutor_FallbackWithoutTx(t *testing.T) {
	fallback := &stubExecutor{name: "db"}

	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, fallback, GetExecutor(ctx, fallback))
}

func TestGetExecutor_PrefersTxFromContext(t *testing.T) {
	fallback := &stubExecutor{name: "db"}
	tx := &stubTx{}

	ctx := WithTx(context.Background(), tx)

	assert.True(t, IsInTransaction(ctx))
	assert.Same(t, tx, GetExecutor(ctx, fallback))
}

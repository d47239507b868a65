//go:build unit

package memstore_test

import (
	"context"
	"testing"
	"time"

	"parking-reservation/internal/domain/slot"
	"parking-reservation/internal/infra"
	"parking-reservation/internal/infra/memstore"
	"parking-reservation/internal/usecase/shared"
	"parking-reservation/tests/common/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(*testing.T) shared.UnitOfWork {
		return memstore.NewUoW(memstore.New())
	})
}

func TestReadOnlyTransactionRejectsWrites(t *testing.T) {
	uow := memstore.NewUoW(memstore.New())
	s := slot.NewSlot(slot.SeedNumber(1), slot.TypeRegular, time.Now())

	err := uow.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Slots().Create(ctx, s)
	})
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
}

func TestCancelledContext(t *testing.T) {
	uow := memstore.NewUoW(memstore.New())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := uow.Within(ctx, func(context.Context, shared.Tx) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

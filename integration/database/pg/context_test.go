package pg

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTx satisfies pgx.Tx for context plumbing tests. Only identity
// matters here; no method is ever called.
type stubTx struct {
	pgx.Tx
	id int
}

func TestTxContext(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a transaction", func(t *testing.T) {
		t.Parallel()

		tx := stubTx{id: 1}
		ctx := WithTx(context.Background(), tx)

		got, ok := TxFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, tx, got)
	})

	t.Run("nil transaction leaves context unchanged", func(t *testing.T) {
		t.Parallel()

		ctx := WithTx(context.Background(), nil)

		_, ok := TxFromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("empty context carries no transaction", func(t *testing.T) {
		t.Parallel()

		_, ok := TxFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("innermost transaction wins", func(t *testing.T) {
		t.Parallel()

		ctx := WithTx(context.Background(), stubTx{id: 1})
		ctx = WithTx(ctx, stubTx{id: 2})

		got, ok := TxFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, stubTx{id: 2}, got)
	})
}

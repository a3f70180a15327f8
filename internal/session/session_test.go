package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/store"
)

func TestManager(t *testing.T) {
	ctx := context.Background()
	m := NewManager(store.NewMemoryStore())

	alice := models.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Balance: 100}
	bob := models.User{ID: "u2", Name: "Bob", Email: "bob@example.com"}

	t.Run("no session initially", func(t *testing.T) {
		_, err := m.Current(ctx)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("set and read back", func(t *testing.T) {
		assert.NoError(t, m.Set(ctx, alice))

		current, err := m.Current(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "u1", current.ID)
		assert.Equal(t, int64(100), current.Balance)
	})

	t.Run("reconcile refreshes the active user", func(t *testing.T) {
		updated := alice
		updated.Balance = 500
		assert.NoError(t, m.Reconcile(ctx, updated))

		current, err := m.Current(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(500), current.Balance)
	})

	t.Run("reconcile ignores other users", func(t *testing.T) {
		assert.NoError(t, m.Reconcile(ctx, bob))

		current, err := m.Current(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "u1", current.ID)
	})

	t.Run("clear ends the session", func(t *testing.T) {
		assert.NoError(t, m.Clear(ctx))

		_, err := m.Current(ctx)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("reconcile with no session is a no-op", func(t *testing.T) {
		assert.NoError(t, m.Reconcile(ctx, alice))

		_, err := m.Current(ctx)
		assert.ErrorIs(t, err, ErrNoSession)
	})
}

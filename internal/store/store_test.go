package store

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	t.Run("missing key", func(t *testing.T) {
		var doc testDoc
		err := s.Load(ctx, "nope", &doc)
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("save and load", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, "users", []testDoc{{Name: "a", Balance: 100}}))

		var docs []testDoc
		require.NoError(t, s.Load(ctx, "users", &docs))
		require.Len(t, docs, 1)
		assert.Equal(t, int64(100), docs[0].Balance)
	})

	t.Run("load hands out copies", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, "doc", testDoc{Name: "orig"}))

		var first testDoc
		require.NoError(t, s.Load(ctx, "doc", &first))
		first.Name = "mutated"

		var second testDoc
		require.NoError(t, s.Load(ctx, "doc", &second))
		assert.Equal(t, "orig", second.Name)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, "gone", testDoc{}))
		require.NoError(t, s.Delete(ctx, "gone"))

		var doc testDoc
		assert.ErrorIs(t, s.Load(ctx, "gone", &doc), ErrKeyNotFound)
	})
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	s := NewRedisStore(client)

	t.Run("save", func(t *testing.T) {
		mock.ExpectSet("users", []byte(`[{"name":"a","balance":5}]`), 0).SetVal("OK")

		err := s.Save(ctx, "users", []testDoc{{Name: "a", Balance: 5}})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("load", func(t *testing.T) {
		mock.ExpectGet("users").SetVal(`[{"name":"a","balance":5}]`)

		var docs []testDoc
		require.NoError(t, s.Load(ctx, "users", &docs))
		require.Len(t, docs, 1)
		assert.Equal(t, "a", docs[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing key maps to ErrKeyNotFound", func(t *testing.T) {
		mock.ExpectGet("missing").RedisNil()

		var doc testDoc
		assert.ErrorIs(t, s.Load(ctx, "missing", &doc), ErrKeyNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

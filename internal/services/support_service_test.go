package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupportService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	support := NewSupportService(env.repos)

	t.Run("submit and list", func(t *testing.T) {
		msg, err := support.Submit(ctx, "Nadia", "nadia@example.com", "0550123456", "Mon solde ne s'affiche pas")
		assert.NoError(t, err)
		assert.NotEmpty(t, msg.ID)
		assert.False(t, msg.Read)

		messages, unread, err := support.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, messages, 1)
		assert.Equal(t, 1, unread)
	})

	t.Run("mark read drops the unread count", func(t *testing.T) {
		messages, _, err := support.List(ctx)
		assert.NoError(t, err)

		assert.NoError(t, support.MarkRead(ctx, messages[0].ID))

		_, unread, err := support.List(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, unread)
	})

	t.Run("mark read on unknown id fails", func(t *testing.T) {
		err := support.MarkRead(ctx, "ghost")
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestNotificationService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	notifications := NewNotificationService(env.repos)

	user := env.register(t, "notified@example.com", "individual")
	other := env.register(t, "other@example.com", "individual")

	receipt, err := env.receipts.Submit(ctx, user, 20000, "virement.png", pngBytes())
	assert.NoError(t, err)
	_, err = env.receipts.Approve(ctx, receipt.ID)
	assert.NoError(t, err)

	t.Run("feed is scoped to the user", func(t *testing.T) {
		mine, err := notifications.ListForUser(ctx, user.ID)
		assert.NoError(t, err)
		assert.Len(t, mine, 1)

		theirs, err := notifications.ListForUser(ctx, other.ID)
		assert.NoError(t, err)
		assert.Empty(t, theirs)
	})

	t.Run("another user's notification reads as missing", func(t *testing.T) {
		mine, err := notifications.ListForUser(ctx, user.ID)
		assert.NoError(t, err)

		err = notifications.MarkRead(ctx, other.ID, mine[0].ID)
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)

		mine, err = notifications.ListForUser(ctx, user.ID)
		assert.NoError(t, err)
		assert.False(t, mine[0].Read)
	})

	t.Run("mark read is one way", func(t *testing.T) {
		mine, err := notifications.ListForUser(ctx, user.ID)
		assert.NoError(t, err)

		assert.NoError(t, notifications.MarkRead(ctx, user.ID, mine[0].ID))

		mine, err = notifications.ListForUser(ctx, user.ID)
		assert.NoError(t, err)
		assert.True(t, mine[0].Read)
	})

	t.Run("unknown id fails", func(t *testing.T) {
		err := notifications.MarkRead(ctx, user.ID, "ghost")
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

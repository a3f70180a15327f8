package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elamirpay/backend/internal/models"
)

func TestLedgerService_Deposit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("credits the balance", func(t *testing.T) {
		user := env.register(t, "deposit@example.com", models.AccountIndividual)

		result, err := env.ledger.Deposit(ctx, user, 2500)
		assert.NoError(t, err)
		assert.Equal(t, int64(2500), result.Balance)
		assert.False(t, result.BonusGranted)

		stored, err := env.directory.GetByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(2500), stored.Balance)
	})

	t.Run("trader bonus at the threshold", func(t *testing.T) {
		user := env.register(t, "bonus@example.com", models.AccountTrader)

		result, err := env.ledger.Deposit(ctx, user, 50000)
		assert.NoError(t, err)
		assert.True(t, result.BonusGranted)
		assert.Equal(t, int64(60000), result.Balance)

		stored, err := env.directory.GetByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.True(t, stored.BonusReceived)
		assert.False(t, stored.BonusEligible)
	})

	t.Run("bonus granted at most once", func(t *testing.T) {
		user := env.register(t, "once@example.com", models.AccountTrader)

		first, err := env.ledger.Deposit(ctx, user, 50000)
		assert.NoError(t, err)
		assert.True(t, first.BonusGranted)

		second, err := env.ledger.Deposit(ctx, user, 50000)
		assert.NoError(t, err)
		assert.False(t, second.BonusGranted)
		assert.Equal(t, int64(120000), second.Balance)
	})

	t.Run("no bonus below the threshold", func(t *testing.T) {
		user := env.register(t, "below@example.com", models.AccountTrader)

		result, err := env.ledger.Deposit(ctx, user, 49999)
		assert.NoError(t, err)
		assert.False(t, result.BonusGranted)
		assert.Equal(t, int64(49999), result.Balance)

		// eligibility survives a sub-threshold deposit
		stored, err := env.directory.GetByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.True(t, stored.BonusEligible)
	})

	t.Run("no bonus for individual accounts", func(t *testing.T) {
		user := env.register(t, "individual@example.com", models.AccountIndividual)

		result, err := env.ledger.Deposit(ctx, user, 100000)
		assert.NoError(t, err)
		assert.False(t, result.BonusGranted)
		assert.Equal(t, int64(100000), result.Balance)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		user := env.register(t, "zero@example.com", models.AccountIndividual)

		_, err := env.ledger.Deposit(ctx, user, 0)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = env.ledger.Deposit(ctx, user, -100)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestLedgerService_PurchaseRecharge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("debits amount plus fee and logs the order", func(t *testing.T) {
		user := env.register(t, "recharge@example.com", models.AccountIndividual)
		_, err := env.ledger.Deposit(ctx, user, 5000)
		assert.NoError(t, err)

		order, err := env.ledger.PurchaseRecharge(ctx, user.ID, "djezzy", "0550123456", 1000)
		assert.NoError(t, err)
		assert.Equal(t, int64(1000), order.Amount)
		assert.Equal(t, int64(10), order.Fee)
		assert.Equal(t, int64(1010), order.Total)
		assert.Equal(t, models.OrderCompleted, order.Status)
		assert.Equal(t, "recharge@example.com", order.UserEmail)

		stored, err := env.directory.GetByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(3990), stored.Balance)
	})

	t.Run("insufficient balance leaves everything untouched", func(t *testing.T) {
		user := env.register(t, "poor@example.com", models.AccountIndividual)
		_, err := env.ledger.Deposit(ctx, user, 1000)
		assert.NoError(t, err)

		env.repos.RLock()
		ordersBefore, _ := env.repos.Orders.List(ctx)
		env.repos.RUnlock()

		_, err = env.ledger.PurchaseRecharge(ctx, user.ID, "mobilis", "0660123456", 1000)
		var insufficient *InsufficientBalanceError
		assert.ErrorAs(t, err, &insufficient)
		assert.Equal(t, int64(1010), insufficient.Required)
		assert.Equal(t, int64(1000), insufficient.Available)

		stored, err := env.directory.GetByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(1000), stored.Balance)

		env.repos.RLock()
		ordersAfter, _ := env.repos.Orders.List(ctx)
		env.repos.RUnlock()
		assert.Len(t, ordersAfter, len(ordersBefore))
	})

	t.Run("exact total succeeds", func(t *testing.T) {
		user := env.register(t, "exact@example.com", models.AccountIndividual)
		_, err := env.ledger.Deposit(ctx, user, 1010)
		assert.NoError(t, err)

		_, err = env.ledger.PurchaseRecharge(ctx, user.ID, "ooredoo", "0770123456", 1000)
		assert.NoError(t, err)

		stored, err := env.directory.GetByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), stored.Balance)
	})

	t.Run("unknown user fails", func(t *testing.T) {
		_, err := env.ledger.PurchaseRecharge(ctx, "ghost", "djezzy", "0550123456", 1000)
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		user := env.register(t, "negative@example.com", models.AccountIndividual)
		_, err := env.ledger.PurchaseRecharge(ctx, user.ID, "djezzy", "0550123456", -5)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestLedgerService_AdminSetBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("overwrites without touching bonus flags", func(t *testing.T) {
		user := env.register(t, "override@example.com", models.AccountTrader)

		updated, err := env.ledger.AdminSetBalance(ctx, user.ID, 123456)
		assert.NoError(t, err)
		assert.Equal(t, int64(123456), updated.Balance)
		assert.True(t, updated.BonusEligible)
		assert.False(t, updated.BonusReceived)
	})

	t.Run("rejects negative balance", func(t *testing.T) {
		user := env.register(t, "negbalance@example.com", models.AccountIndividual)
		_, err := env.ledger.AdminSetBalance(ctx, user.ID, -1)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown user fails", func(t *testing.T) {
		_, err := env.ledger.AdminSetBalance(ctx, "ghost", 100)
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestLedgerService_Summary(t *testing.T) {
	env := newTestEnv(t)

	summary := env.ledger.Summary(2000)
	assert.Equal(t, int64(2000), summary.Amount)
	assert.Equal(t, int64(10), summary.Fee)
	assert.Equal(t, int64(2010), summary.Total)
}

// Full customer journey: deposit with bonus, successful recharge, refused
// recharge leaving the balance alone.
func TestLedgerService_DepositThenRecharge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.register(t, "journey@example.com", models.AccountTrader)

	deposit, err := env.ledger.Deposit(ctx, user, 50000)
	assert.NoError(t, err)
	assert.Equal(t, int64(60000), deposit.Balance)
	assert.True(t, deposit.BonusGranted)

	order, err := env.ledger.PurchaseRecharge(ctx, user.ID, "djezzy", "0550123456", 1000)
	assert.NoError(t, err)
	assert.Equal(t, int64(1010), order.Total)

	stored, err := env.directory.GetByID(ctx, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(58990), stored.Balance)

	_, err = env.ledger.PurchaseRecharge(ctx, user.ID, "djezzy", "0550123456", 60000)
	var insufficient *InsufficientBalanceError
	assert.ErrorAs(t, err, &insufficient)

	stored, err = env.directory.GetByID(ctx, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(58990), stored.Balance)
}

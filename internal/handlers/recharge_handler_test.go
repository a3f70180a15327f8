package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elamirpay/backend/internal/config"
	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/repository"
	"github.com/elamirpay/backend/internal/services"
	"github.com/elamirpay/backend/internal/session"
	"github.com/elamirpay/backend/internal/store"
)

func newRechargeFixture(t *testing.T) (*RechargeHandler, *models.User) {
	t.Helper()

	s := store.NewMemoryStore()
	repos := repository.New(s)
	sessions := session.NewManager(s)
	directory := services.NewDirectoryService(repos, sessions)
	ledger := services.NewLedgerService(repos, directory, &config.LedgerConfig{
		ServiceFee:     10,
		BonusAmount:    10000,
		BonusThreshold: 50000,
	})

	user, err := directory.Register(context.Background(), services.RegisterParams{
		Name:        "Test User",
		Email:       "user@example.com",
		Phone:       "0550123456",
		Password:    "secret123",
		AccountType: models.AccountIndividual,
	})
	assert.NoError(t, err)

	_, err = ledger.Deposit(context.Background(), user, 5000)
	assert.NoError(t, err)

	return NewRechargeHandler(ledger), user
}

func authedRequest(method, target, body, userID string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	ctx := context.WithValue(req.Context(), "userID", userID)
	return req.WithContext(ctx)
}

func TestRechargeHandler_PurchaseRecharge(t *testing.T) {
	t.Run("successful purchase", func(t *testing.T) {
		handler, user := newRechargeFixture(t)

		req := authedRequest("POST", "/api/v1/recharges",
			`{"operator":"djezzy","phoneNumber":"0550123456","amount":1000}`, user.ID)
		rec := httptest.NewRecorder()
		handler.PurchaseRecharge(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var order models.Order
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
		assert.Equal(t, int64(1010), order.Total)
		assert.Equal(t, models.OrderCompleted, order.Status)
	})

	t.Run("missing identity", func(t *testing.T) {
		handler, _ := newRechargeFixture(t)

		req := httptest.NewRequest("POST", "/api/v1/recharges",
			strings.NewReader(`{"operator":"djezzy","phoneNumber":"0550123456","amount":1000}`))
		rec := httptest.NewRecorder()
		handler.PurchaseRecharge(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		handler, user := newRechargeFixture(t)

		req := authedRequest("POST", "/api/v1/recharges",
			`{"operator":"djezzy","phoneNumber":"0550123456","amount":1000,"extra":true}`, user.ID)
		rec := httptest.NewRecorder()
		handler.PurchaseRecharge(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		handler, user := newRechargeFixture(t)

		req := authedRequest("POST", "/api/v1/recharges",
			`{"operator":"","phoneNumber":"0550123456","amount":1000}`, user.ID)
		rec := httptest.NewRecorder()
		handler.PurchaseRecharge(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("insufficient balance surfaces the code", func(t *testing.T) {
		handler, user := newRechargeFixture(t)

		req := authedRequest("POST", "/api/v1/recharges",
			`{"operator":"djezzy","phoneNumber":"0550123456","amount":100000}`, user.ID)
		rec := httptest.NewRecorder()
		handler.PurchaseRecharge(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp services.ErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "INSUFFICIENT_BALANCE", resp.Code)
	})
}

func TestRechargeHandler_GetSummary(t *testing.T) {
	handler, user := newRechargeFixture(t)

	t.Run("prices the recharge", func(t *testing.T) {
		req := authedRequest("GET", "/api/v1/recharges/summary?amount=2000", "", user.ID)
		rec := httptest.NewRecorder()
		handler.GetSummary(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var summary services.RechargeSummary
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
		assert.Equal(t, int64(2000), summary.Amount)
		assert.Equal(t, int64(10), summary.Fee)
		assert.Equal(t, int64(2010), summary.Total)
	})

	t.Run("rejects a missing amount", func(t *testing.T) {
		req := authedRequest("GET", "/api/v1/recharges/summary", "", user.ID)
		rec := httptest.NewRecorder()
		handler.GetSummary(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		for _, amount := range []string{"0", "-100"} {
			req := authedRequest("GET", "/api/v1/recharges/summary?amount="+amount, "", user.ID)
			rec := httptest.NewRecorder()
			handler.GetSummary(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		}
	})
}

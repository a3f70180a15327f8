package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elamirpay/backend/internal/services"
)

func TestQRHandler_ValidateDepositQR(t *testing.T) {
	// nil Redis: the service cannot hold nonces
	handler := NewQRHandler(services.NewQRService(nil))

	t.Run("service unavailable without redis", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/admin/qr/validate",
			strings.NewReader(`{"qrCode":"abc"}`))
		rec := httptest.NewRecorder()
		handler.ValidateDepositQR(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("missing code fails validation", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/admin/qr/validate",
			strings.NewReader(`{"qrCode":""}`))
		rec := httptest.NewRecorder()
		handler.ValidateDepositQR(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/admin/qr/validate",
			strings.NewReader(`{"qrCode":`))
		rec := httptest.NewRecorder()
		handler.ValidateDepositQR(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestQRHandler_GenerateDepositQR_Unauthorized(t *testing.T) {
	handler := NewQRHandler(services.NewQRService(nil))

	req := httptest.NewRequest("POST", "/api/v1/qr/deposit",
		strings.NewReader(`{"amount":5000}`))
	rec := httptest.NewRecorder()
	handler.GenerateDepositQR(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elamirpay/backend/internal/config"
	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/repository"
	"github.com/elamirpay/backend/internal/session"
	"github.com/elamirpay/backend/internal/store"
)

// testEnv wires the full service graph over an in-memory store.
type testEnv struct {
	repos     *repository.Repositories
	sessions  *session.Manager
	directory *DirectoryService
	ledger    *LedgerService
	receipts  *ReceiptService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s := store.NewMemoryStore()
	repos := repository.New(s)
	sessions := session.NewManager(s)

	ledgerCfg := &config.LedgerConfig{
		ServiceFee:     10,
		BonusAmount:    10000,
		BonusThreshold: 50000,
	}
	reviewCfg := &config.ReviewConfig{
		AdminEmail:     "admin@agence-elamir.dz",
		ReviewWindow:   time.Hour,
		MaxReceiptSize: 5 * 1024 * 1024,
	}

	directory := NewDirectoryService(repos, sessions)
	ledger := NewLedgerService(repos, directory, ledgerCfg)
	receipts := NewReceiptService(repos, ledger, directory, reviewCfg)
	t.Cleanup(receipts.Close)

	return &testEnv{
		repos:     repos,
		sessions:  sessions,
		directory: directory,
		ledger:    ledger,
		receipts:  receipts,
	}
}

func (e *testEnv) register(t *testing.T, email string, accountType models.AccountType) *models.User {
	t.Helper()

	user, err := e.directory.Register(context.Background(), RegisterParams{
		Name:        "Test User",
		Email:       email,
		Phone:       "0550123456",
		Password:    "secret123",
		AccountType: accountType,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

// authedServiceRequest builds a request carrying the identity the auth
// middleware would have injected.
func authedServiceRequest(method, target, userID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), "userID", userID)
	return req.WithContext(ctx)
}

// pngBytes is a minimal payload that sniffs as image/png.
func pngBytes() []byte {
	return []byte("\x89PNG\r\n\x1a\n" + "test image payload")
}

// pdfBytes sniffs as application/pdf.
func pdfBytes() []byte {
	return []byte("%PDF-1.4 test document payload")
}

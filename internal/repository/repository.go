// Package repository exposes typed collections over the key-value store.
// One store key per collection, mirroring the layout the browser client
// persisted: the whole collection is loaded, edited in memory and written
// back. That read-modify-write cycle is not atomic at the store level, so
// the bundle carries a single process-wide lock and every mutating
// operation in the service layer runs under it.
package repository

import (
	"errors"
	"sync"

	"github.com/elamirpay/backend/internal/store"
)

// Store keys. These names are part of the external contract and must not
// change: existing installations already hold data under them.
const (
	KeyUsers            = "users"
	KeyCurrentUser      = "currentUser"
	KeyPendingReceipts  = "pendingReceipts"
	KeyApprovedReceipts = "approvedReceipts"
	KeyRejectedReceipts = "rejectedReceipts"
	KeyOrders           = "orders"
	KeySupportMessages  = "supportMessages"
	KeyNotifications    = "notifications"
	KeyLanguage         = "language"
	KeyDarkMode         = "darkMode"
)

// ErrNotFound is returned when a record is absent from its collection.
var ErrNotFound = errors.New("repository: record not found")

// Repositories bundles the per-entity repositories with the lock that
// serializes read-modify-write cycles against the shared store.
type Repositories struct {
	mu sync.RWMutex

	Users         *UserRepository
	Receipts      *ReceiptRepository
	Orders        *OrderRepository
	Notifications *NotificationRepository
	Support       *SupportRepository
	Preferences   *PreferencesRepository
}

func New(s store.Store) *Repositories {
	return &Repositories{
		Users:         &UserRepository{store: s},
		Receipts:      &ReceiptRepository{store: s},
		Orders:        &OrderRepository{store: s},
		Notifications: &NotificationRepository{store: s},
		Support:       &SupportRepository{store: s},
		Preferences:   &PreferencesRepository{store: s},
	}
}

func (r *Repositories) Lock()    { r.mu.Lock() }
func (r *Repositories) Unlock()  { r.mu.Unlock() }
func (r *Repositories) RLock()   { r.mu.RLock() }
func (r *Repositories) RUnlock() { r.mu.RUnlock() }

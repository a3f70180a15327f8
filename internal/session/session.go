// Package session tracks the active authenticated user, mirrored into
// the store under the currentUser key the way the browser client kept
// it. Request identity travels in the bearer token; the mirror exists so
// the persisted state stays shaped like the original installation's.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/repository"
	"github.com/elamirpay/backend/internal/store"
)

// ErrNoSession is returned when no user is logged in.
var ErrNoSession = errors.New("session: no active session")

// Manager owns the session lifecycle: created at authentication, cleared
// at logout, never implicitly resurrected. The held user is a copy and
// must be reconciled whenever the directory mutates that record.
type Manager struct {
	store store.Store
}

func NewManager(s store.Store) *Manager {
	return &Manager{store: s}
}

func (m *Manager) Current(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := m.store.Load(ctx, repository.KeyCurrentUser, &user); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &user, nil
}

func (m *Manager) Set(ctx context.Context, user models.User) error {
	if err := m.store.Save(ctx, repository.KeyCurrentUser, user); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Delete(ctx, repository.KeyCurrentUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Reconcile refreshes the mirrored copy after a directory mutation. A
// no-op when the mutated user is not the one logged in.
func (m *Manager) Reconcile(ctx context.Context, user models.User) error {
	current, err := m.Current(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil
		}
		return err
	}
	if current.ID != user.ID {
		return nil
	}
	return m.Set(ctx, user)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/repository"
	"github.com/elamirpay/backend/internal/session"
)

// DirectoryService owns the user collection: registration, credential
// checks and durable record updates. Every balance or bonus mutation in
// the system funnels through Update so the stored record and the session
// copy never diverge past the end of an operation.
type DirectoryService struct {
	repos    *repository.Repositories
	sessions *session.Manager
	now      func() time.Time
}

type RegisterParams struct {
	Name        string
	Email       string
	Phone       string
	Password    string
	AccountType models.AccountType
}

func NewDirectoryService(repos *repository.Repositories, sessions *session.Manager) *DirectoryService {
	return &DirectoryService{
		repos:    repos,
		sessions: sessions,
		now:      time.Now,
	}
}

// Register creates a new account and establishes it as the active
// session. Trader accounts start bonus-eligible; nobody starts with a
// balance.
func (s *DirectoryService) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	if p.AccountType != models.AccountIndividual && p.AccountType != models.AccountTrader {
		return nil, fmt.Errorf("account type %q: %w", p.AccountType, ErrInvalidInput)
	}

	s.repos.Lock()
	defer s.repos.Unlock()

	if _, err := s.repos.Users.GetByEmail(ctx, p.Email); err == nil {
		log.Printf("[DIRECTORY] Registration rejected, email taken: %s", p.Email)
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user := models.User{
		ID:            uuid.New().String(),
		Name:          p.Name,
		Email:         p.Email,
		Phone:         p.Phone,
		Password:      p.Password,
		AccountType:   p.AccountType,
		Balance:       0,
		BonusEligible: p.AccountType == models.AccountTrader,
		BonusReceived: false,
		CreatedAt:     s.now(),
	}

	if err := s.repos.Users.Insert(ctx, user); err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("[DIRECTORY] User registered: %s (%s)", user.Email, user.AccountType)
	return &user, nil
}

// Authenticate checks an exact (email, password) pair. The comparison is
// plaintext equality; hashing would change the documented semantics and
// is deliberately not applied here.
func (s *DirectoryService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	s.repos.Lock()
	defer s.repos.Unlock()

	users, err := s.repos.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			if err := s.sessions.Set(ctx, users[i]); err != nil {
				return nil, err
			}
			log.Printf("[DIRECTORY] Login successful: %s", email)
			return &users[i], nil
		}
	}

	log.Printf("[DIRECTORY] Login failed: %s", email)
	return nil, ErrInvalidCredentials
}

// Logout clears the active session.
func (s *DirectoryService) Logout(ctx context.Context) error {
	s.repos.Lock()
	defer s.repos.Unlock()
	return s.sessions.Clear(ctx)
}

// Update replaces the stored record matching user.ID and reconciles the
// session copy.
func (s *DirectoryService) Update(ctx context.Context, user models.User) error {
	s.repos.Lock()
	defer s.repos.Unlock()
	return s.update(ctx, user)
}

// update is the lock-free variant for callers already holding the
// repository lock.
func (s *DirectoryService) update(ctx context.Context, user models.User) error {
	if err := s.repos.Users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Kind: "user", ID: user.ID}
		}
		return err
	}
	return s.sessions.Reconcile(ctx, user)
}

// GetByID fetches a user record.
func (s *DirectoryService) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.repos.RLock()
	defer s.repos.RUnlock()

	user, err := s.repos.Users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Kind: "user", ID: id}
	}
	return user, err
}

// List returns every registered user.
func (s *DirectoryService) List(ctx context.Context) ([]models.User, error) {
	s.repos.RLock()
	defer s.repos.RUnlock()
	return s.repos.Users.List(ctx)
}

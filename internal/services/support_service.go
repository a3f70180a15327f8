package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/repository"
)

// SupportService stores contact-form submissions for the admin inbox.
type SupportService struct {
	repos *repository.Repositories
	now   func() time.Time
}

func NewSupportService(repos *repository.Repositories) *SupportService {
	return &SupportService{repos: repos, now: time.Now}
}

func (s *SupportService) Submit(ctx context.Context, name, email, phone, message string) (*models.SupportMessage, error) {
	msg := models.SupportMessage{
		ID:      uuid.New().String(),
		Name:    name,
		Email:   email,
		Phone:   phone,
		Message: message,
		Date:    s.now(),
	}

	s.repos.Lock()
	defer s.repos.Unlock()
	if err := s.repos.Support.Append(ctx, msg); err != nil {
		return nil, err
	}
	log.Printf("[SUPPORT] Message received from %s", email)
	return &msg, nil
}

// List returns every message plus the unread count for the inbox badge.
func (s *SupportService) List(ctx context.Context) ([]models.SupportMessage, int, error) {
	s.repos.RLock()
	defer s.repos.RUnlock()

	messages, err := s.repos.Support.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	unread := 0
	for _, m := range messages {
		if !m.Read {
			unread++
		}
	}
	return messages, unread, nil
}

func (s *SupportService) MarkRead(ctx context.Context, id string) error {
	s.repos.Lock()
	defer s.repos.Unlock()

	if err := s.repos.Support.MarkRead(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Kind: "support message", ID: id}
		}
		return err
	}
	return nil
}

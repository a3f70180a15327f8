package services

import (
	"context"
	"errors"

	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/repository"
)

// NotificationService exposes the per-user notification feed.
type NotificationService struct {
	repos *repository.Repositories
}

func NewNotificationService(repos *repository.Repositories) *NotificationService {
	return &NotificationService{repos: repos}
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	s.repos.RLock()
	defer s.repos.RUnlock()
	return s.repos.Notifications.ListForUser(ctx, userID)
}

// MarkRead flips the read flag on one of the caller's own
// notifications. Another user's notification is indistinguishable from
// a missing one.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	s.repos.Lock()
	defer s.repos.Unlock()

	all, err := s.repos.Notifications.List(ctx)
	if err != nil {
		return err
	}
	owned := false
	for _, n := range all {
		if n.ID == id && n.UserID == userID {
			owned = true
			break
		}
	}
	if !owned {
		return &NotFoundError{Kind: "notification", ID: id}
	}

	if err := s.repos.Notifications.MarkRead(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Kind: "notification", ID: id}
		}
		return err
	}
	return nil
}

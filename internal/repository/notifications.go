package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/store"
)

// NotificationRepository owns the notifications collection.
type NotificationRepository struct {
	store store.Store
}

func (r *NotificationRepository) List(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.store.Load(ctx, KeyNotifications, &notifications); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (r *NotificationRepository) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Notification
	for _, n := range all {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *NotificationRepository) Append(ctx context.Context, n models.Notification) error {
	all, err := r.List(ctx)
	if err != nil {
		return err
	}
	all = append(all, n)
	if err := r.store.Save(ctx, KeyNotifications, all); err != nil {
		return fmt.Errorf("append notification: %w", err)
	}
	return nil
}

// MarkRead flips the read flag to true. The transition is one-way; a
// read notification never becomes unread again.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	all, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == id {
			all[i].Read = true
			if err := r.store.Save(ctx, KeyNotifications, all); err != nil {
				return fmt.Errorf("mark notification read: %w", err)
			}
			return nil
		}
	}
	return ErrNotFound
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/store"
)

// UserRepository owns the users collection. Email lookups are exact,
// case-sensitive matches against the stored value.
type UserRepository struct {
	store store.Store
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.store.Load(ctx, KeyUsers, &users); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// Insert appends the user. Uniqueness of the email is the caller's
// responsibility; the directory service checks it before inserting.
func (r *UserRepository) Insert(ctx context.Context, user models.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	users = append(users, user)
	if err := r.store.Save(ctx, KeyUsers, users); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update replaces the stored record matching user.ID. This is the only
// path by which balance and bonus mutations become durable.
func (r *UserRepository) Update(ctx context.Context, user models.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			if err := r.store.Save(ctx, KeyUsers, users); err != nil {
				return fmt.Errorf("update user: %w", err)
			}
			return nil
		}
	}
	return ErrNotFound
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/store"
)

// SupportRepository owns the contact-form message collection.
type SupportRepository struct {
	store store.Store
}

func (r *SupportRepository) List(ctx context.Context) ([]models.SupportMessage, error) {
	var messages []models.SupportMessage
	if err := r.store.Load(ctx, KeySupportMessages, &messages); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list support messages: %w", err)
	}
	return messages, nil
}

func (r *SupportRepository) Append(ctx context.Context, msg models.SupportMessage) error {
	messages, err := r.List(ctx)
	if err != nil {
		return err
	}
	messages = append(messages, msg)
	if err := r.store.Save(ctx, KeySupportMessages, messages); err != nil {
		return fmt.Errorf("append support message: %w", err)
	}
	return nil
}

func (r *SupportRepository) MarkRead(ctx context.Context, id string) error {
	messages, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range messages {
		if messages[i].ID == id {
			messages[i].Read = true
			if err := r.store.Save(ctx, KeySupportMessages, messages); err != nil {
				return fmt.Errorf("mark support message read: %w", err)
			}
			return nil
		}
	}
	return ErrNotFound
}

// PreferencesRepository persists the client presentation settings under
// the language and darkMode keys, matching what the browser stored.
type PreferencesRepository struct {
	store store.Store
}

func (r *PreferencesRepository) Get(ctx context.Context) (models.Preferences, error) {
	prefs := models.Preferences{Language: "ar"}

	var lang string
	if err := r.store.Load(ctx, KeyLanguage, &lang); err == nil {
		prefs.Language = lang
	} else if !errors.Is(err, store.ErrKeyNotFound) {
		return prefs, fmt.Errorf("load language: %w", err)
	}

	var dark bool
	if err := r.store.Load(ctx, KeyDarkMode, &dark); err == nil {
		prefs.DarkMode = dark
	} else if !errors.Is(err, store.ErrKeyNotFound) {
		return prefs, fmt.Errorf("load darkMode: %w", err)
	}

	return prefs, nil
}

func (r *PreferencesRepository) Set(ctx context.Context, prefs models.Preferences) error {
	if err := r.store.Save(ctx, KeyLanguage, prefs.Language); err != nil {
		return fmt.Errorf("save language: %w", err)
	}
	if err := r.store.Save(ctx, KeyDarkMode, prefs.DarkMode); err != nil {
		return fmt.Errorf("save darkMode: %w", err)
	}
	return nil
}

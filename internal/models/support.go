package models

import "time"

// SupportMessage is a contact-form submission reviewed by the admin.
type SupportMessage struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	Read    bool      `json:"read"`
}

// Preferences are per-installation presentation settings persisted for
// the client. They sit outside the ledger core.
type Preferences struct {
	Language string `json:"language" example:"ar"` // ar or fr
	DarkMode bool   `json:"darkMode"`
}

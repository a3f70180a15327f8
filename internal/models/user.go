package models

import "time"

type AccountType string

const (
	AccountIndividual AccountType = "individual"
	AccountTrader     AccountType = "trader"
)

// User represents a registered customer account. Email is the unique
// lookup key and is compared exactly as stored (case-sensitive).
// Passwords are stored and compared in plaintext; this mirrors the
// behaviour of the system being replaced and is a known weakness.
type User struct {
	ID            string      `json:"id" example:"7f9c24e5-1f6a-4f3e-9d2b-0c8a1b2c3d4e"`
	Name          string      `json:"name" example:"Ahmed Benali"`
	Email         string      `json:"email" example:"user@example.com"`
	Phone         string      `json:"phone" example:"+213550123456"`
	Password      string      `json:"password"`
	AccountType   AccountType `json:"accountType" example:"individual"`
	Balance       int64       `json:"balance" example:"58990"` // DZD, whole units
	BonusEligible bool        `json:"bonusEligible"`
	BonusReceived bool        `json:"bonusReceived"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// PublicUser is the user representation returned to clients, with the
// password stripped.
type PublicUser struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	AccountType   AccountType `json:"accountType"`
	Balance       int64       `json:"balance"`
	BonusEligible bool        `json:"bonusEligible"`
	BonusReceived bool        `json:"bonusReceived"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// Public returns a copy of the user safe to serialize in responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		AccountType:   u.AccountType,
		Balance:       u.Balance,
		BonusEligible: u.BonusEligible,
		BonusReceived: u.BonusReceived,
		CreatedAt:     u.CreatedAt,
	}
}

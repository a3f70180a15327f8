package models

import "time"

const OrderCompleted = "completed"

// Order records a completed phone recharge purchase. Orders are
// append-only and never mutated after creation.
type Order struct {
	ID          string    `json:"id"`
	Operator    string    `json:"operator" example:"Djezzy"`
	PhoneNumber string    `json:"phoneNumber" example:"0550123456"`
	Amount      int64     `json:"amount" example:"1000"`
	Fee         int64     `json:"fee" example:"10"`
	Total       int64     `json:"total" example:"1010"`
	UserName    string    `json:"userName"`
	UserEmail   string    `json:"userEmail"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status" example:"completed"`
}

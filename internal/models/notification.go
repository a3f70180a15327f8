package models

import "time"

type NotificationKind string

const (
	NotifyReceiptApproved NotificationKind = "receipt_approved"
	NotifyReceiptRejected NotificationKind = "receipt_rejected"
	NotifyBonusGranted    NotificationKind = "bonus_granted"
	NotifyReviewDue       NotificationKind = "receipt_review_due"
)

// Notification is created as a side effect of receipt decisions. The
// kind is a stable code; the client translates it into localized text.
// Read only ever transitions false to true.
type Notification struct {
	ID     string           `json:"id"`
	UserID string           `json:"userId"`
	Kind   NotificationKind `json:"kind"`
	Amount int64            `json:"amount,omitempty"`
	Date   time.Time        `json:"date"`
	Read   bool             `json:"read"`
}

package models

import "time"

type ReceiptStatus string

const (
	ReceiptPending  ReceiptStatus = "pending"
	ReceiptApproved ReceiptStatus = "approved"
	ReceiptRejected ReceiptStatus = "rejected"
)

// Receipt is a user-submitted proof of a bank deposit. The user fields
// are a snapshot taken at submission time, not a live reference: editing
// the account later does not rewrite a pending receipt. Once a receipt
// reaches a terminal status it leaves the pending queue for good and
// lives in the matching history log.
type Receipt struct {
	ID           string        `json:"id"`
	UserEmail    string        `json:"userEmail"`
	UserName     string        `json:"userName"`
	UserPhone    string        `json:"userPhone"`
	Amount       int64         `json:"amount" example:"50000"`
	Date         time.Time     `json:"date"`
	FileName     string        `json:"fileName"`
	FileType     string        `json:"fileType"` // image/jpeg, image/png or application/pdf
	FileData     string        `json:"fileData"` // base64-encoded blob
	Status       ReceiptStatus `json:"status"`
	ApprovedDate *time.Time    `json:"approvedDate,omitempty"`
	RejectedDate *time.Time    `json:"rejectedDate,omitempty"`
}

package services

import (
	"errors"
	"fmt"
)

// Domain errors. Every operation either succeeds or returns one of
// these; all are recoverable at the call site and map one-to-one onto
// the error codes the client translates.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrFileTooLarge       = errors.New("file exceeds maximum size")
	ErrInvalidInput       = errors.New("invalid input")
)

// InsufficientBalanceError reports how much the purchase needed against
// what the account held. The balance is left untouched.
type InsufficientBalanceError struct {
	Required  int64
	Available int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: need %d, have %d", e.Required, e.Available)
}

// InvalidFileError rejects a receipt upload whose content is not an
// accepted kind.
type InvalidFileError struct {
	Reason string
}

func (e *InvalidFileError) Error() string {
	return fmt.Sprintf("invalid file: %s", e.Reason)
}

// NotFoundError identifies a missing primary record.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

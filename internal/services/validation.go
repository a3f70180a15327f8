package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error   string            `json:"error"`             // Error message
	Code    string            `json:"code,omitempty"`    // Stable error code for client-side translation
	Details map[string]string `json:"details,omitempty"` // Validation details
}

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a new validation helper
func NewValidationHelper() *ValidationHelper {
	return &ValidationHelper{
		validator: validator.New(),
	}
}

// ValidateStruct validates a struct and returns validation errors
func (vh *ValidationHelper) ValidateStruct(s any) error {
	return vh.validator.Struct(s)
}

// SendErrorResponse sends a JSON error response
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, validationErr error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResp := ErrorResponse{Error: message}
	if validationErr != nil {
		errorResp.Details = make(map[string]string)
		for _, err := range validationErr.(validator.ValidationErrors) {
			errorResp.Details[err.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", err.Tag())
		}
	}

	json.NewEncoder(w).Encode(errorResp)
}

// SendDomainError maps a domain error onto an HTTP status and a stable
// error code. The messages are not user-facing text; the client owns
// localization.
func SendDomainError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var insufficient *InsufficientBalanceError
	var invalidFile *InvalidFileError
	var notFound *NotFoundError

	switch {
	case errors.Is(err, ErrDuplicateEmail):
		status = http.StatusConflict
		resp.Code = "DUPLICATE_EMAIL"
	case errors.Is(err, ErrInvalidCredentials):
		status = http.StatusUnauthorized
		resp.Code = "INVALID_CREDENTIALS"
	case errors.Is(err, ErrFileTooLarge):
		status = http.StatusRequestEntityTooLarge
		resp.Code = "FILE_TOO_LARGE"
	case errors.Is(err, ErrInvalidInput):
		status = http.StatusBadRequest
		resp.Code = "INVALID_INPUT"
	case errors.As(err, &insufficient):
		status = http.StatusBadRequest
		resp.Code = "INSUFFICIENT_BALANCE"
		resp.Details = map[string]string{
			"required":  strconv.FormatInt(insufficient.Required, 10),
			"available": strconv.FormatInt(insufficient.Available, 10),
		}
	case errors.As(err, &invalidFile):
		status = http.StatusBadRequest
		resp.Code = "INVALID_FILE"
		resp.Details = map[string]string{"reason": invalidFile.Reason}
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		resp.Code = "NOT_FOUND"
		resp.Details = map[string]string{"kind": notFound.Kind, "id": notFound.ID}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

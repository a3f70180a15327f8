package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/services"
)

type SupportHandler struct {
	support   *services.SupportService
	validator *services.ValidationHelper
}

// SupportRequest represents a contact-form submission
// @Description Contact form structure
type SupportRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message" validate:"required,min=5,max=2000"`
}

// SupportInbox is the admin view of the message list
type SupportInbox struct {
	Messages []models.SupportMessage `json:"messages"`
	Unread   int                     `json:"unread"`
}

func NewSupportHandler(support *services.SupportService) *SupportHandler {
	return &SupportHandler{
		support:   support,
		validator: services.NewValidationHelper(),
	}
}

// SubmitMessage accepts a contact-form message
// @Summary Send a support message
// @Tags support
// @Accept json
// @Produce json
// @Param request body SupportRequest true "Support message"
// @Success 200 {object} models.SupportMessage
// @Failure 400 {object} services.ErrorResponse
// @Router /support/messages [post]
func (h *SupportHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req SupportRequest
	if err := dec.Decode(&req); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	msg, err := h.support.Submit(r.Context(), req.Name, req.Email, req.Phone, req.Message)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(msg)
}

// ListMessages lists support messages for the admin inbox
// @Summary List support messages
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SupportInbox
// @Router /admin/support/messages [get]
func (h *SupportHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, unread, err := h.support.List(r.Context())
	if err != nil {
		services.SendErrorResponse(w, "Failed to list messages", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SupportInbox{Messages: messages, Unread: unread})
}

// MarkMessageRead marks a support message as read
// @Summary Mark a support message read
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} services.ErrorResponse
// @Router /admin/support/messages/{id}/read [put]
func (h *SupportHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.support.MarkRead(r.Context(), id); err != nil {
		services.SendDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Marked as read"})
}

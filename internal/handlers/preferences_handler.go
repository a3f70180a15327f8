package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/repository"
	"github.com/elamirpay/backend/internal/services"
)

type PreferencesHandler struct {
	repos     *repository.Repositories
	validator *services.ValidationHelper
}

// PreferencesRequest updates the client presentation settings
type PreferencesRequest struct {
	Language string `json:"language" validate:"required,oneof=ar fr"`
	DarkMode bool   `json:"darkMode"`
}

func NewPreferencesHandler(repos *repository.Repositories) *PreferencesHandler {
	return &PreferencesHandler{
		repos:     repos,
		validator: services.NewValidationHelper(),
	}
}

// GetPreferences returns the stored language and dark-mode settings
// @Summary Get preferences
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Preferences
// @Router /preferences [get]
func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	h.repos.RLock()
	prefs, err := h.repos.Preferences.Get(r.Context())
	h.repos.RUnlock()
	if err != nil {
		services.SendErrorResponse(w, "Failed to load preferences", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prefs)
}

// SetPreferences stores the language and dark-mode settings
// @Summary Update preferences
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PreferencesRequest true "Preferences"
// @Success 200 {object} models.Preferences
// @Failure 400 {object} services.ErrorResponse
// @Router /preferences [put]
func (h *PreferencesHandler) SetPreferences(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req PreferencesRequest
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

	prefs := models.Preferences{Language: req.Language, DarkMode: req.DarkMode}

	h.repos.Lock()
	err := h.repos.Preferences.Set(r.Context(), prefs)
	h.repos.Unlock()
	if err != nil {
		services.SendErrorResponse(w, "Failed to save preferences", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prefs)
}

package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/repository"
	"github.com/elamirpay/backend/internal/services"
)

type AdminHandler struct {
	directory *services.DirectoryService
	ledger    *services.LedgerService
	stats     *services.StatsService
	repos     *repository.Repositories
	validator *services.ValidationHelper
}

// SetBalanceRequest represents the admin balance override payload
// @Description Balance override structure
type SetBalanceRequest struct {
	Balance *int64 `json:"balance" validate:"required" example:"25000"` // New balance, must be >= 0
}

func NewAdminHandler(directory *services.DirectoryService, ledger *services.LedgerService, stats *services.StatsService, repos *repository.Repositories) *AdminHandler {
	return &AdminHandler{
		directory: directory,
		ledger:    ledger,
		stats:     stats,
		repos:     repos,
		validator: services.NewValidationHelper(),
	}
}

// ListUsers lists registered users
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PublicUser
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.directory.List(r.Context())
	if err != nil {
		services.SendErrorResponse(w, "Failed to list users", http.StatusInternalServerError, nil)
		return
	}

	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// SetUserBalance overrides a user's balance
// @Summary Set a user's balance
// @Description Administrative override, bypasses deposit and purchase accounting
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body SetBalanceRequest true "New balance"
// @Success 200 {object} models.PublicUser
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /admin/users/{id}/balance [put]
func (h *AdminHandler) SetUserBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req SetBalanceRequest
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

	user, err := h.ledger.AdminSetBalance(r.Context(), userID, *req.Balance)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user.Public())
}

// ListOrders lists completed recharge orders
// @Summary List orders
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Order
// @Router /admin/orders [get]
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	h.repos.RLock()
	orders, err := h.repos.Orders.List(r.Context())
	h.repos.RUnlock()
	if err != nil {
		services.SendErrorResponse(w, "Failed to list orders", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

// GetStats returns the dashboard statistics
// @Summary Dashboard statistics
// @Description Total users, total orders, fee revenue and today's order count
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.Stats
// @Router /admin/stats [get]
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Compute(r.Context())
	if err != nil {
		services.SendErrorResponse(w, "Failed to compute statistics", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

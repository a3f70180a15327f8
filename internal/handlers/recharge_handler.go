package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/elamirpay/backend/internal/services"
)

type RechargeHandler struct {
	ledger    *services.LedgerService
	validator *services.ValidationHelper
}

// RechargeRequest represents a recharge purchase payload
// @Description Recharge purchase structure
type RechargeRequest struct {
	Operator    string `json:"operator" validate:"required" example:"Djezzy"`        // Mobile operator
	PhoneNumber string `json:"phoneNumber" validate:"required" example:"0550123456"` // Number to recharge
	Amount      int64  `json:"amount" validate:"required,gt=0" example:"1000"`       // Recharge amount
}

func NewRechargeHandler(ledger *services.LedgerService) *RechargeHandler {
	return &RechargeHandler{
		ledger:    ledger,
		validator: services.NewValidationHelper(),
	}
}

// PurchaseRecharge buys a phone recharge from the account balance
// @Summary Purchase a recharge
// @Description Debit amount plus the fixed service fee and record a completed order
// @Tags recharges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RechargeRequest true "Recharge request"
// @Success 200 {object} models.Order
// @Failure 400 {object} services.ErrorResponse "Insufficient balance or invalid input"
// @Failure 401 {object} services.ErrorResponse
// @Router /recharges [post]
func (h *RechargeHandler) PurchaseRecharge(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req RechargeRequest
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

	order, err := h.ledger.PurchaseRecharge(r.Context(), userID, req.Operator, req.PhoneNumber, req.Amount)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// GetSummary prices a recharge
// @Summary Price a recharge
// @Description Return amount, fixed fee and total for a prospective recharge
// @Tags recharges
// @Produce json
// @Security BearerAuth
// @Param amount query int true "Recharge amount"
// @Success 200 {object} services.RechargeSummary
// @Failure 400 {object} services.ErrorResponse
// @Router /recharges/summary [get]
func (h *RechargeHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseInt(r.URL.Query().Get("amount"), 10, 64)
	if err != nil || amount <= 0 {
		services.SendErrorResponse(w, "Invalid amount", http.StatusBadRequest, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.ledger.Summary(amount))
}

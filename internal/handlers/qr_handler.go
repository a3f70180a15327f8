package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/elamirpay/backend/internal/services"
)

type QRHandler struct {
	qr        *services.QRService
	validator *services.ValidationHelper
}

// DepositQRRequest asks for a bank-transfer QR code for the given amount
type DepositQRRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// DepositQRResponse carries the encoded payload and a PNG rendering
type DepositQRResponse struct {
	QRCode  string `json:"qrCode"`
	QRImage string `json:"qrImage"`
}

// ValidateQRRequest carries a scanned QR payload for confirmation
type ValidateQRRequest struct {
	QRCode string `json:"qrCode" validate:"required"`
}

func NewQRHandler(qr *services.QRService) *QRHandler {
	return &QRHandler{
		qr:        qr,
		validator: services.NewValidationHelper(),
	}
}

// GenerateDepositQR issues a single-use deposit QR code
// @Summary Generate a deposit QR code
// @Tags qr
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DepositQRRequest true "Deposit amount"
// @Success 200 {object} DepositQRResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 503 {object} services.ErrorResponse
// @Router /qr/deposit [post]
func (h *QRHandler) GenerateDepositQR(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req DepositQRRequest
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

	code, image, err := h.qr.GenerateDepositQR(r.Context(), userID, req.Amount)
	if err != nil {
		if errors.Is(err, services.ErrQRUnavailable) {
			services.SendErrorResponse(w, "QR service unavailable", http.StatusServiceUnavailable, nil)
			return
		}
		services.SendErrorResponse(w, "Failed to generate QR code", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DepositQRResponse{QRCode: code, QRImage: image})
}

// ValidateDepositQR confirms a scanned deposit QR code
// @Summary Validate a deposit QR code
// @Description Confirm a scanned QR before filing the matching receipt; codes are single-use
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ValidateQRRequest true "Scanned QR payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} services.ErrorResponse
// @Failure 503 {object} services.ErrorResponse
// @Router /admin/qr/validate [post]
func (h *QRHandler) ValidateDepositQR(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req ValidateQRRequest
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

	payload, err := h.qr.ValidateDepositQR(r.Context(), req.QRCode)
	if err != nil {
		if errors.Is(err, services.ErrQRUnavailable) {
			services.SendErrorResponse(w, "QR service unavailable", http.StatusServiceUnavailable, nil)
			return
		}
		services.SendErrorResponse(w, "Invalid or expired QR code", http.StatusBadRequest, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

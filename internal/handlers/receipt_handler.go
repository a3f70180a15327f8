package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/elamirpay/backend/internal/services"
)

type ReceiptHandler struct {
	receipts  *services.ReceiptService
	directory *services.DirectoryService
}

func NewReceiptHandler(receipts *services.ReceiptService, directory *services.DirectoryService) *ReceiptHandler {
	return &ReceiptHandler{
		receipts:  receipts,
		directory: directory,
	}
}

// SubmitReceipt accepts a deposit receipt upload
// @Summary Submit a deposit receipt
// @Description Upload proof of a bank deposit (JPEG, PNG or PDF, max 5 MiB) for admin review
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param amount formData int true "Deposit amount"
// @Param file formData file true "Receipt file"
// @Success 200 {object} models.Receipt
// @Failure 400 {object} services.ErrorResponse
// @Failure 413 {object} services.ErrorResponse
// @Router /receipts [post]
func (h *ReceiptHandler) SubmitReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	// File limit plus form overhead; the service enforces the exact cap.
	r.Body = http.MaxBytesReader(w, r.Body, 6*1024*1024)
	if err := r.ParseMultipartForm(6 * 1024 * 1024); err != nil {
		services.SendErrorResponse(w, "Invalid multipart form", http.StatusBadRequest, nil)
		return
	}

	amount, err := strconv.ParseInt(r.FormValue("amount"), 10, 64)
	if err != nil {
		services.SendErrorResponse(w, "Invalid amount", http.StatusBadRequest, nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		services.SendErrorResponse(w, "Receipt file required", http.StatusBadRequest, nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[RECEIPT] Failed to read upload: %v", err)
		services.SendErrorResponse(w, "Failed to read file", http.StatusBadRequest, nil)
		return
	}

	user, err := h.directory.GetByID(r.Context(), userID)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	receipt, err := h.receipts.Submit(r.Context(), user, amount, header.Filename, data)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	// The blob is not echoed back; the admin viewer fetches it on demand.
	receipt.FileData = ""
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(receipt)
}

// ListPending lists receipts awaiting review
// @Summary List pending receipts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Receipt
// @Router /admin/receipts/pending [get]
func (h *ReceiptHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.receipts.ListPending(r.Context())
	if err != nil {
		services.SendErrorResponse(w, "Failed to list receipts", http.StatusInternalServerError, nil)
		return
	}

	for i := range receipts {
		receipts[i].FileData = ""
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(receipts)
}

// ApproveReceipt approves a pending receipt
// @Summary Approve a receipt
// @Description Move the receipt to the approved history and credit the submitter
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Receipt ID"
// @Success 200 {object} models.Receipt
// @Failure 404 {object} services.ErrorResponse
// @Router /admin/receipts/{id}/approve [put]
func (h *ReceiptHandler) ApproveReceipt(w http.ResponseWriter, r *http.Request) {
	receiptID := chi.URLParam(r, "id")

	receipt, err := h.receipts.Approve(r.Context(), receiptID)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	receipt.FileData = ""
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(receipt)
}

// RejectReceipt rejects a pending receipt
// @Summary Reject a receipt
// @Description Move the receipt to the rejected history; no balance change
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Receipt ID"
// @Success 200 {object} models.Receipt
// @Failure 404 {object} services.ErrorResponse
// @Router /admin/receipts/{id}/reject [put]
func (h *ReceiptHandler) RejectReceipt(w http.ResponseWriter, r *http.Request) {
	receiptID := chi.URLParam(r, "id")

	receipt, err := h.receipts.Reject(r.Context(), receiptID)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	receipt.FileData = ""
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(receipt)
}

// GetReceiptFile serves the stored receipt blob
// @Summary View a receipt file
// @Tags admin
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Receipt ID"
// @Success 200 {file} binary
// @Failure 404 {object} services.ErrorResponse
// @Router /admin/receipts/{id}/file [get]
func (h *ReceiptHandler) GetReceiptFile(w http.ResponseWriter, r *http.Request) {
	receiptID := chi.URLParam(r, "id")

	contentType, data, err := h.receipts.GetPendingFile(r.Context(), receiptID)
	if err != nil {
		services.SendDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/store"
)

// ReceiptRepository owns the pending queue and the two terminal history
// logs. A receipt lives in exactly one of the three collections.
type ReceiptRepository struct {
	store store.Store
}

func (r *ReceiptRepository) loadList(ctx context.Context, key string) ([]models.Receipt, error) {
	var receipts []models.Receipt
	if err := r.store.Load(ctx, key, &receipts); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return receipts, nil
}

func (r *ReceiptRepository) ListPending(ctx context.Context) ([]models.Receipt, error) {
	return r.loadList(ctx, KeyPendingReceipts)
}

func (r *ReceiptRepository) ListApproved(ctx context.Context) ([]models.Receipt, error) {
	return r.loadList(ctx, KeyApprovedReceipts)
}

func (r *ReceiptRepository) ListRejected(ctx context.Context) ([]models.Receipt, error) {
	return r.loadList(ctx, KeyRejectedReceipts)
}

func (r *ReceiptRepository) GetPending(ctx context.Context, id string) (*models.Receipt, error) {
	pending, err := r.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pending {
		if pending[i].ID == id {
			return &pending[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *ReceiptRepository) AddPending(ctx context.Context, receipt models.Receipt) error {
	pending, err := r.ListPending(ctx)
	if err != nil {
		return err
	}
	pending = append(pending, receipt)
	if err := r.store.Save(ctx, KeyPendingReceipts, pending); err != nil {
		return fmt.Errorf("add pending receipt: %w", err)
	}
	return nil
}

// MoveToHistory removes the receipt from the pending queue and appends
// the updated record to the history log for its terminal status. The
// receipt ends up in exactly one history, never both, never duplicated.
func (r *ReceiptRepository) MoveToHistory(ctx context.Context, updated models.Receipt) error {
	var historyKey string
	switch updated.Status {
	case models.ReceiptApproved:
		historyKey = KeyApprovedReceipts
	case models.ReceiptRejected:
		historyKey = KeyRejectedReceipts
	default:
		return fmt.Errorf("move receipt %s: status %q is not terminal", updated.ID, updated.Status)
	}

	pending, err := r.ListPending(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range pending {
		if pending[i].ID == updated.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}
	pending = append(pending[:idx], pending[idx+1:]...)

	history, err := r.loadList(ctx, historyKey)
	if err != nil {
		return err
	}
	history = append(history, updated)

	// History first: if the second write fails the receipt is at worst
	// visible in both places, never lost.
	if err := r.store.Save(ctx, historyKey, history); err != nil {
		return fmt.Errorf("append %s: %w", historyKey, err)
	}
	if err := r.store.Save(ctx, KeyPendingReceipts, pending); err != nil {
		return fmt.Errorf("remove pending receipt: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/elamirpay/backend/internal/models"
	"github.com/elamirpay/backend/internal/store"
)

// OrderRepository owns the append-only order log.
type OrderRepository struct {
	store store.Store
}

func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.store.Load(ctx, KeyOrders, &orders); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) Append(ctx context.Context, order models.Order) error {
	orders, err := r.List(ctx)
	if err != nil {
		return err
	}
	orders = append(orders, order)
	if err := r.store.Save(ctx, KeyOrders, orders); err != nil {
		return fmt.Errorf("append order: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.OrdersSaver = (*OrdersService)(nil)

// An OrdersService persists placed orders arriving
// from the order-placed stream.
type OrdersService struct {
	storage port.OrdersStorage
}

func NewOrdersService(storage port.OrdersStorage) OrdersService {
	return OrdersService{storage}
}

func (s OrdersService) SaveOrders(
	ctx context.Context, vs []domain.Order,
) error {
	const op = "OrdersService.SaveOrders"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.StoreOrders(ctx, vs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.OrdersStorage = (*OrdersRepository)(nil)

type OrdersRepository struct {
	sqldb sqldb
}

func NewOrdersRepository(sqldb sqldb) OrdersRepository {
	return OrdersRepository{sqldb}
}

func (r OrdersRepository) StoreOrders(
	ctx context.Context, vs []domain.Order,
) (storeErr error) {
	const op = "OrdersRepository.StoreOrders"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("%s: failed to commit %w", op, err)
			}
			return
		}

		err := tx.Rollback()
		if err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	orderQuery := `
		INSERT INTO orders (
			order_number, client_id, items_total,
			shipping_id, shipping_name, shipping_price,
			total, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`

	itemQuery := `
		INSERT INTO order_items (
			order_id, product_id, name, unit_price, quantity
		)
		VALUES ($1, $2, $3, $4, $5);
	`

	for _, v := range vs {
		var orderID int64
		err := tx.QueryRowContext(ctx, orderQuery,
			v.OrderNumber, v.ClientID, v.ItemsTotal,
			v.Shipping.ID, v.Shipping.Name, v.Shipping.Price,
			v.Total, v.CreatedAt,
		).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("%s: failed to insert order: %w", op, err)
		}

		for _, item := range v.Items {
			_, err := tx.ExecContext(ctx, itemQuery,
				orderID, item.ProductID, item.Name,
				item.UnitPrice(), item.Quantity,
			)
			if err != nil {
				return fmt.Errorf(
					"%s: failed to insert order item: %w", op, err,
				)
			}
		}
	}

	return nil
}

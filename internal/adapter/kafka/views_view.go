package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProductViewsTable = (*ProductViewsView)(nil)

// A ProductViewsViewConfig used for setup [ProductViewsView].
//
// All fields are required.
type ProductViewsViewConfig struct {
	SeedBrokers []string
	GroupTable  string
}

// A ProductViewsView reads the per-product view-count group table.
type ProductViewsView struct {
	gv *goka.View
}

func NewProductViewsView(
	config ProductViewsViewConfig,
) (ProductViewsView, error) {
	const op = "NewProductViewsView"

	gv, err := goka.NewView(
		config.SeedBrokers,
		goka.GroupTable(goka.Group(config.GroupTable)),
		countValueCodec{},
	)
	if err != nil {
		return ProductViewsView{}, opErr(err, op)
	}

	return ProductViewsView{gv}, nil
}

func (v ProductViewsView) Run(ctx context.Context) {
	const op = "ProductViewsView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

func (v ProductViewsView) Views(productName string) (int64, error) {
	const op = "ProductViewsView.Views"

	value, err := v.gv.Get(productName)
	if err != nil {
		return 0, opErr(err, op)
	}

	if value == nil {
		return 0, nil
	}

	count, ok := value.(countValue)
	if !ok {
		return 0, opErr(
			fmt.Errorf("%w: %T", ErrInvalidValueType, value), op,
		)
	}

	return int64(count), nil
}

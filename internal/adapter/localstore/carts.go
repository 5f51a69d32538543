package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/syndtr/goleveldb/leveldb"
)

var _ port.CartStorage = (*CartsRepository)(nil)

type (
	cartRecord struct {
		Items      []cartItemRecord `json:"items"`
		ShippingID string           `json:"shipping_id"`
	}

	cartItemRecord struct {
		ProductID string  `json:"product_id"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		SalePrice float64 `json:"sale_price"`
		OnSale    bool    `json:"on_sale"`
		Quantity  int     `json:"quantity"`
		Stock     int     `json:"stock"`
		ImageURL  string  `json:"image_url"`
		ImageAlt  string  `json:"image_alt"`
	}
)

type CartsRepository struct {
	store LocalStore
}

func NewCartsRepository(store LocalStore) CartsRepository {
	return CartsRepository{store}
}

// LoadCart returns a fresh cart for a client without a stored one.
func (r CartsRepository) LoadCart(
	ctx context.Context, clientID string,
) (domain.Cart, error) {
	const op = "CartsRepository.LoadCart"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	data, err := r.store.db.Get(cartKey(clientID), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return domain.NewCart(), nil
		}
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	var rec cartRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	return rec.toDomain(), nil
}

func (r CartsRepository) StoreCart(
	ctx context.Context, clientID string, c domain.Cart,
) error {
	const op = "CartsRepository.StoreCart"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	data, err := json.Marshal(toCartRecord(c))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.store.db.Put(cartKey(clientID), data, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func toCartRecord(c domain.Cart) (rec cartRecord) {
	rec.ShippingID = c.ShippingID
	rec.Items = make([]cartItemRecord, len(c.Items))
	for i, item := range c.Items {
		rec.Items[i] = cartItemRecord{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			SalePrice: item.SalePrice,
			OnSale:    item.OnSale,
			Quantity:  item.Quantity,
			Stock:     item.Stock,
			ImageURL:  item.Image.URL,
			ImageAlt:  item.Image.Alt,
		}
	}
	return rec
}

func (rec cartRecord) toDomain() (c domain.Cart) {
	c.ShippingID = rec.ShippingID
	if c.ShippingID == "" {
		c.ShippingID = domain.DefaultShippingID
	}
	if len(rec.Items) == 0 {
		return c
	}
	c.Items = make([]domain.CartItem, len(rec.Items))
	for i, item := range rec.Items {
		c.Items[i] = domain.CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			SalePrice: item.SalePrice,
			OnSale:    item.OnSale,
			Quantity:  item.Quantity,
			Stock:     item.Stock,
			Image: domain.ProductImage{
				URL: item.ImageURL,
				Alt: item.ImageAlt,
			},
		}
	}
	return c
}

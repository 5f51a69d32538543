package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CartGetter = (*CartService)(nil)
var _ port.ItemAdder = (*CartService)(nil)
var _ port.QuantityUpdater = (*CartService)(nil)
var _ port.ItemRemover = (*CartService)(nil)
var _ port.CartCleaner = (*CartService)(nil)
var _ port.ShippingSelector = (*CartService)(nil)
var _ port.CheckoutPerformer = (*CartService)(nil)

// A CartService is the cart state machine: add, update quantity,
// remove, clear, shipping selection and checkout. Stock-limit
// rejections come back as [domain.Result], not as errors.
type CartService struct {
	carts         port.CartStorage
	products      port.ProductsStorage
	orders        port.OrdersProducer
	checkoutDelay time.Duration
}

func NewCartService(
	carts port.CartStorage,
	products port.ProductsStorage,
	orders port.OrdersProducer,
	checkoutDelay time.Duration,
) CartService {
	return CartService{carts, products, orders, checkoutDelay}
}

func (s CartService) GetCart(
	ctx context.Context, clientID string,
) (domain.Cart, error) {
	const op = "CartService.GetCart"

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, err := s.carts.LoadCart(ctx, clientID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	return cart, nil
}

func (s CartService) AddItem(
	ctx context.Context, clientID, productID string,
) (domain.Result, error) {
	const op = "CartService.AddItem"

	if err := ctx.Err(); err != nil {
		return domain.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, err := s.carts.LoadCart(ctx, clientID)
	if err != nil {
		return domain.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.products.ProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.Rejected("Product is not available"), nil
		}
		return domain.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := cart.AddItem(p); err != nil {
		res, err := rejectCartErr(err)
		if err != nil {
			return domain.Result{}, fmt.Errorf("%s: %w", op, err)
		}
		return res, nil
	}

	if err := s.carts.StoreCart(ctx, clientID, cart); err != nil {
		return domain.Result{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.Accepted("Added to cart"), nil
}

func (s CartService) UpdateQuantity(
	ctx context.Context, clientID, productID string, quantity int,
) (domain.Result, error) {
	const op = "CartService.UpdateQuantity"

	if err := ctx.Err(); err != nil {
		return domain.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, err := s.carts.LoadCart(ctx, clientID)
	if err != nil {
		return domain.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := cart.SetQuantity(productID, quantity); err != nil {
		res, err := rejectCartErr(err)
		if err != nil {
			return domain.Result{}, fmt.Errorf("%s: %w", op, err)
		}
		return res, nil
	}

	if err := s.carts.StoreCart(ctx, clientID, cart); err != nil {
		return domain.Result{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.Accepted("Quantity updated"), nil
}

func (s CartService) RemoveItem(
	ctx context.Context, clientID, productID string,
) error {
	const op = "CartService.RemoveItem"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cart, err := s.carts.LoadCart(ctx, clientID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cart.RemoveItem(productID)

	if err := s.carts.StoreCart(ctx, clientID, cart); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CartService) ClearCart(ctx context.Context, clientID string) error {
	const op = "CartService.ClearCart"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cart, err := s.carts.LoadCart(ctx, clientID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cart.Clear()

	if err := s.carts.StoreCart(ctx, clientID, cart); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CartService) SelectShipping(
	ctx context.Context, clientID, optionID string,
) (domain.Result, error) {
	const op = "CartService.SelectShipping"

	if err := ctx.Err(); err != nil {
		return domain.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, err := s.carts.LoadCart(ctx, clientID)
	if err != nil {
		return domain.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := cart.SelectShipping(optionID); err != nil {
		return domain.Rejected("Unknown shipping option"), nil
	}

	if err := s.carts.StoreCart(ctx, clientID, cart); err != nil {
		return domain.Result{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.Accepted("Shipping option selected"), nil
}

// Checkout simulates the payment round trip, generates an order and
// emits it to the order-placed stream. The cart is left untouched,
// clearing it is an explicit follow-up.
func (s CartService) Checkout(
	ctx context.Context, clientID string,
) (domain.Order, error) {
	const op = "CartService.Checkout"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, err := s.carts.LoadCart(ctx, clientID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if cart.IsEmpty() {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyCart)
	}

	if err := s.processPayment(ctx); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order := s.makeOrder(clientID, cart)

	if err := s.orders.ProduceOrder(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (s CartService) processPayment(ctx context.Context) error {
	if s.checkoutDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.checkoutDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s CartService) makeOrder(clientID string, c domain.Cart) domain.Order {
	items := make([]domain.CartItem, len(c.Items))
	copy(items, c.Items)

	return domain.Order{
		OrderNumber: orderNumber(),
		ClientID:    clientID,
		Items:       items,
		ItemsTotal:  c.ItemsTotal(),
		Shipping:    c.Shipping(),
		Total:       c.Total(),
		CreatedAt:   time.Now().UTC(),
	}
}

// orderNumber returns a random 6-digit number.
func orderNumber() int64 {
	return 100000 + rand.Int64N(900000)
}

func rejectCartErr(err error) (domain.Result, error) {
	switch {
	case errors.Is(err, domain.ErrOutOfStock):
		return domain.Rejected("Out of stock"), nil
	case errors.Is(err, domain.ErrMaxQuantity):
		return domain.Rejected("Maximum quantity reached"), nil
	case errors.Is(err, domain.ErrItemNotFound):
		return domain.Rejected("Item is not in the cart"), nil
	default:
		return domain.Result{}, err
	}
}

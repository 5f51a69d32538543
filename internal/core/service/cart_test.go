package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type CartStorageFake struct {
	m map[string]domain.Cart
}

func NewCartStorageFake() *CartStorageFake {
	return &CartStorageFake{m: make(map[string]domain.Cart)}
}

func (f *CartStorageFake) LoadCart(
	_ context.Context, clientID string,
) (domain.Cart, error) {
	if c, ok := f.m[clientID]; ok {
		return c, nil
	}
	return domain.NewCart(), nil
}

func (f *CartStorageFake) StoreCart(
	_ context.Context, clientID string, c domain.Cart,
) error {
	f.m[clientID] = c
	return nil
}

type MockProductsStorage struct {
	mock.Mock
}

func (m *MockProductsStorage) StoreProducts(
	ctx context.Context, ps []domain.Product,
) error {
	args := m.Called(ctx, ps)
	return args.Error(0)
}

func (m *MockProductsStorage) ProductByID(
	ctx context.Context, productID string,
) (domain.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductsStorage) QueryProducts(
	ctx context.Context, q domain.ProductQuery,
) ([]domain.Product, error) {
	args := m.Called(ctx, q)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

type MockOrdersProducer struct {
	mock.Mock
}

func (m *MockOrdersProducer) ProduceOrder(
	ctx context.Context, o domain.Order,
) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func stubProduct(id string, stock int) domain.Product {
	return domain.Product{
		ProductID:      id,
		Name:           "Product " + id,
		Price:          domain.ProductPrice{Amount: 50, Currency: "USD"},
		AvailableStock: stock,
	}
}

const clientID = "testClient"

func newCartService(
	carts *CartStorageFake,
	products *MockProductsStorage,
	orders *MockOrdersProducer,
) service.CartService {
	return service.NewCartService(carts, products, orders, 0)
}

func TestCartServiceAddItem(t *testing.T) {

	t.Run("Accepted", func(t *testing.T) {
		carts := NewCartStorageFake()
		products := new(MockProductsStorage)
		products.On("ProductByID", mock.Anything, "p1").
			Return(stubProduct("p1", 5), nil)

		s := newCartService(carts, products, new(MockOrdersProducer))

		res, err := s.AddItem(t.Context(), clientID, "p1")
		require.NoError(t, err)
		assert.True(t, res.Success)

		cart, err := s.GetCart(t.Context(), clientID)
		require.NoError(t, err)
		assert.Equal(t, 1, cart.TotalItems())
	})

	t.Run("UnknownProductRejected", func(t *testing.T) {
		carts := NewCartStorageFake()
		products := new(MockProductsStorage)
		products.On("ProductByID", mock.Anything, "ghost").
			Return(domain.Product{}, domain.ErrProductNotFound)

		s := newCartService(carts, products, new(MockOrdersProducer))

		res, err := s.AddItem(t.Context(), clientID, "ghost")
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.Message)
	})

	t.Run("OutOfStockRejected", func(t *testing.T) {
		carts := NewCartStorageFake()
		products := new(MockProductsStorage)
		products.On("ProductByID", mock.Anything, "p1").
			Return(stubProduct("p1", 0), nil)

		s := newCartService(carts, products, new(MockOrdersProducer))

		res, err := s.AddItem(t.Context(), clientID, "p1")
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "Out of stock", res.Message)
	})

	t.Run("StockLimitRejected", func(t *testing.T) {
		carts := NewCartStorageFake()
		products := new(MockProductsStorage)
		products.On("ProductByID", mock.Anything, "p1").
			Return(stubProduct("p1", 1), nil)

		s := newCartService(carts, products, new(MockOrdersProducer))

		res, err := s.AddItem(t.Context(), clientID, "p1")
		require.NoError(t, err)
		require.True(t, res.Success)

		res, err = s.AddItem(t.Context(), clientID, "p1")
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "Maximum quantity reached", res.Message)
	})
}

func TestCartServiceUpdateQuantity(t *testing.T) {

	t.Run("OverStockKeepsPriorQuantity", func(t *testing.T) {
		carts := NewCartStorageFake()
		products := new(MockProductsStorage)
		products.On("ProductByID", mock.Anything, "p1").
			Return(stubProduct("p1", 3), nil)

		s := newCartService(carts, products, new(MockOrdersProducer))

		_, err := s.AddItem(t.Context(), clientID, "p1")
		require.NoError(t, err)

		res, err := s.UpdateQuantity(t.Context(), clientID, "p1", 10)
		require.NoError(t, err)
		assert.False(t, res.Success)

		cart, err := s.GetCart(t.Context(), clientID)
		require.NoError(t, err)
		item, ok := cart.Item("p1")
		require.True(t, ok)
		assert.Equal(t, 1, item.Quantity)
	})

	t.Run("ZeroRemovesLine", func(t *testing.T) {
		carts := NewCartStorageFake()
		products := new(MockProductsStorage)
		products.On("ProductByID", mock.Anything, "p1").
			Return(stubProduct("p1", 3), nil)

		s := newCartService(carts, products, new(MockOrdersProducer))

		_, err := s.AddItem(t.Context(), clientID, "p1")
		require.NoError(t, err)

		res, err := s.UpdateQuantity(t.Context(), clientID, "p1", 0)
		require.NoError(t, err)
		assert.True(t, res.Success)

		cart, err := s.GetCart(t.Context(), clientID)
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})
}

func TestCartServiceShipping(t *testing.T) {

	t.Run("SelectReplacesPrior", func(t *testing.T) {
		carts := NewCartStorageFake()
		s := newCartService(
			carts, new(MockProductsStorage), new(MockOrdersProducer),
		)

		res, err := s.SelectShipping(t.Context(), clientID, "express")
		require.NoError(t, err)
		require.True(t, res.Success)

		cart, err := s.GetCart(t.Context(), clientID)
		require.NoError(t, err)
		assert.Equal(t, "express", cart.Shipping().ID)
	})

	t.Run("UnknownOptionRejected", func(t *testing.T) {
		carts := NewCartStorageFake()
		s := newCartService(
			carts, new(MockProductsStorage), new(MockOrdersProducer),
		)

		res, err := s.SelectShipping(t.Context(), clientID, "teleport")
		require.NoError(t, err)
		assert.False(t, res.Success)

		cart, err := s.GetCart(t.Context(), clientID)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultShippingID, cart.Shipping().ID)
	})
}

func TestCartServiceCheckout(t *testing.T) {

	fillCart := func(t *testing.T) (*CartStorageFake, service.CartService, *MockOrdersProducer) {
		t.Helper()
		carts := NewCartStorageFake()
		products := new(MockProductsStorage)
		products.On("ProductByID", mock.Anything, "p1").
			Return(stubProduct("p1", 5), nil)
		orders := new(MockOrdersProducer)
		orders.On("ProduceOrder", mock.Anything, mock.Anything).Return(nil)

		s := newCartService(carts, products, orders)
		_, err := s.AddItem(t.Context(), clientID, "p1")
		require.NoError(t, err)
		return carts, s, orders
	}

	t.Run("EmptyCart", func(t *testing.T) {
		s := newCartService(
			NewCartStorageFake(),
			new(MockProductsStorage),
			new(MockOrdersProducer),
		)

		_, err := s.Checkout(t.Context(), clientID)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	})

	t.Run("ProducesNumericOrderNumber", func(t *testing.T) {
		_, s, orders := fillCart(t)

		order, err := s.Checkout(t.Context(), clientID)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, order.OrderNumber, int64(100000))
		assert.Less(t, order.OrderNumber, int64(1000000))
		orders.AssertCalled(t, "ProduceOrder", mock.Anything, order)
	})

	t.Run("CartIsNotMutated", func(t *testing.T) {
		_, s, _ := fillCart(t)

		before, err := s.GetCart(t.Context(), clientID)
		require.NoError(t, err)

		_, err = s.Checkout(t.Context(), clientID)
		require.NoError(t, err)

		after, err := s.GetCart(t.Context(), clientID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("OrderSnapshotsTotals", func(t *testing.T) {
		_, s, _ := fillCart(t)

		cart, err := s.GetCart(t.Context(), clientID)
		require.NoError(t, err)

		order, err := s.Checkout(t.Context(), clientID)
		require.NoError(t, err)

		assert.InDelta(t, cart.ItemsTotal(), order.ItemsTotal, 1e-9)
		assert.InDelta(t, cart.Total(), order.Total, 1e-9)
		assert.Equal(t, cart.Shipping(), order.Shipping)
	})

	t.Run("CanceledWhileProcessing", func(t *testing.T) {
		carts := NewCartStorageFake()
		products := new(MockProductsStorage)
		products.On("ProductByID", mock.Anything, "p1").
			Return(stubProduct("p1", 5), nil)

		s := service.NewCartService(
			carts, products, new(MockOrdersProducer), time.Minute,
		)
		_, err := s.AddItem(t.Context(), clientID, "p1")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
		defer cancel()

		_, err = s.Checkout(ctx, clientID)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

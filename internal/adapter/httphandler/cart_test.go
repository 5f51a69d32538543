package httphandler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clientID = "testClient"

type CartServiceFake struct {
	cart   domain.Cart
	result domain.Result
	order  domain.Order
	err    error
}

func (f *CartServiceFake) GetCart(
	ctx context.Context, clientID string,
) (domain.Cart, error) {
	return f.cart, f.err
}

func (f *CartServiceFake) AddItem(
	ctx context.Context, clientID, productID string,
) (domain.Result, error) {
	return f.result, f.err
}

func (f *CartServiceFake) UpdateQuantity(
	ctx context.Context, clientID, productID string, quantity int,
) (domain.Result, error) {
	return f.result, f.err
}

func (f *CartServiceFake) RemoveItem(
	ctx context.Context, clientID, productID string,
) error {
	return f.err
}

func (f *CartServiceFake) ClearCart(
	ctx context.Context, clientID string,
) error {
	return f.err
}

func (f *CartServiceFake) SelectShipping(
	ctx context.Context, clientID, optionID string,
) (domain.Result, error) {
	return f.result, f.err
}

func (f *CartServiceFake) Checkout(
	ctx context.Context, clientID string,
) (domain.Order, error) {
	return f.order, f.err
}

func newCartMux(fake *CartServiceFake) *http.ServeMux {
	mux := http.NewServeMux()
	httphandler.RegisterCart(mux, fake)
	return mux
}

func doRequest(
	t *testing.T, mux *http.ServeMux, method, target, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(httphandler.ClientIDHeader, clientID)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCartHandler(t *testing.T) {

	t.Run("MissingClientID", func(t *testing.T) {
		mux := newCartMux(&CartServiceFake{})

		req := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("GetCart", func(t *testing.T) {
		cart := domain.NewCart()
		require.NoError(t, cart.AddItem(domain.Product{
			ProductID:      "p1",
			Name:           "Product p1",
			Price:          domain.ProductPrice{Amount: 100, Currency: "USD"},
			AvailableStock: 5,
		}))
		mux := newCartMux(&CartServiceFake{cart: cart})

		rec := doRequest(t, mux, http.MethodGet, "/v1/cart", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got httphandler.Cart
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got.Items, 1)
		assert.Equal(t, "p1", got.Items[0].ProductID)
		assert.Equal(t, domain.DefaultShippingID, got.ShippingID)
		assert.InDelta(t, cart.Total(), got.Total, 1e-9)
	})

	t.Run("AddItemRejection", func(t *testing.T) {
		fake := &CartServiceFake{
			result: domain.Rejected("Out of stock"),
		}
		mux := newCartMux(fake)

		rec := doRequest(
			t, mux, http.MethodPost, "/v1/cart/items",
			`{"product_id":"p1"}`,
		)
		require.Equal(t, http.StatusOK, rec.Code)

		var got httphandler.Result
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.False(t, got.Success)
		assert.Equal(t, "Out of stock", got.Message)
	})

	t.Run("AddItemInvalidJSON", func(t *testing.T) {
		mux := newCartMux(&CartServiceFake{})

		rec := doRequest(t, mux, http.MethodPost, "/v1/cart/items", `not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("AddItemMissingProductID", func(t *testing.T) {
		mux := newCartMux(&CartServiceFake{})

		rec := doRequest(t, mux, http.MethodPost, "/v1/cart/items", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("CheckoutEmptyCart", func(t *testing.T) {
		fake := &CartServiceFake{err: domain.ErrEmptyCart}
		mux := newCartMux(fake)

		rec := doRequest(t, mux, http.MethodPost, "/v1/cart/checkout", "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("CheckoutPlacesOrder", func(t *testing.T) {
		fake := &CartServiceFake{
			order: domain.Order{OrderNumber: 123456, Total: 104.99},
		}
		mux := newCartMux(fake)

		rec := doRequest(t, mux, http.MethodPost, "/v1/cart/checkout", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got httphandler.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int64(123456), got.OrderNumber)
		assert.InDelta(t, 104.99, got.Total, 1e-9)
	})

	t.Run("DeleteItem", func(t *testing.T) {
		mux := newCartMux(&CartServiceFake{})

		rec := doRequest(t, mux, http.MethodDelete, "/v1/cart/items/p1", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("ShippingOptions", func(t *testing.T) {
		mux := newCartMux(&CartServiceFake{})

		rec := doRequest(t, mux, http.MethodGet, "/v1/shipping-options", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got []httphandler.ShippingOption
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 3)
		assert.Equal(t, domain.DefaultShippingID, got[0].ID)
	})
}

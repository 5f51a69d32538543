package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET    v1/cart                          (200 OK)
// POST   v1/cart/items JSON               (200 OK, 400 Bad request)
// PUT    v1/cart/items/{productID} JSON   (200 OK, 400 Bad request)
// DELETE v1/cart/items/{productID}        (204 No content)
// DELETE v1/cart                          (204 No content)
// PUT    v1/cart/shipping JSON            (200 OK, 400 Bad request)
// POST   v1/cart/checkout                 (200 OK, 409 Conflict)
// GET    v1/shipping-options              (200 OK)

type CartService interface {
	port.CartGetter
	port.ItemAdder
	port.QuantityUpdater
	port.ItemRemover
	port.CartCleaner
	port.ShippingSelector
	port.CheckoutPerformer
}

type CartHandler struct {
	cart CartService
}

func RegisterCart(mux *http.ServeMux, cart CartService) {
	h := CartHandler{cart}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PUT /v1/cart/items/{productID}", h.PutItemQuantity)
	mux.HandleFunc("DELETE /v1/cart/items/{productID}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/cart", h.DeleteCart)
	mux.HandleFunc("PUT /v1/cart/shipping", h.PutShipping)
	mux.HandleFunc("POST /v1/cart/checkout", h.PostCheckout)
	mux.HandleFunc("GET /v1/shipping-options", h.GetShippingOptions)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	cID, ok := clientID(w, r)
	if !ok {
		return
	}

	cart, err := h.cart.GetCart(r.Context(), cID)
	if err != nil {
		http.Error(w, "failed to load cart", http.StatusInternalServerError)
		log.Error("failed to get cart", "err", err)
		return
	}

	writeJSON(w, log, http.StatusOK, toCartView(cart))
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	cID, ok := clientID(w, r)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "missing product id", http.StatusBadRequest)
		return
	}

	res, err := h.cart.AddItem(r.Context(), cID, req.ProductID)
	if err != nil {
		http.Error(w, "failed to add item", http.StatusInternalServerError)
		log.Error("failed to add item", "err", err)
		return
	}

	writeJSON(w, log, http.StatusOK, toResultView(res))
}

func (h CartHandler) PutItemQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PutItemQuantity"
	log := slog.With("op", op)

	cID, ok := clientID(w, r)
	if !ok {
		return
	}
	productID := r.PathValue("productID")

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	res, err := h.cart.UpdateQuantity(r.Context(), cID, productID, req.Quantity)
	if err != nil {
		http.Error(w, "failed to update quantity", http.StatusInternalServerError)
		log.Error("failed to update quantity", "err", err)
		return
	}

	writeJSON(w, log, http.StatusOK, toResultView(res))
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	cID, ok := clientID(w, r)
	if !ok {
		return
	}

	err := h.cart.RemoveItem(r.Context(), cID, r.PathValue("productID"))
	if err != nil {
		http.Error(w, "failed to remove item", http.StatusInternalServerError)
		log.Error("failed to remove item", "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteCart"
	log := slog.With("op", op)

	cID, ok := clientID(w, r)
	if !ok {
		return
	}

	if err := h.cart.ClearCart(r.Context(), cID); err != nil {
		http.Error(w, "failed to clear cart", http.StatusInternalServerError)
		log.Error("failed to clear cart", "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) PutShipping(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PutShipping"
	log := slog.With("op", op)

	cID, ok := clientID(w, r)
	if !ok {
		return
	}

	var req SelectShippingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	res, err := h.cart.SelectShipping(r.Context(), cID, req.OptionID)
	if err != nil {
		http.Error(w, "failed to select shipping", http.StatusInternalServerError)
		log.Error("failed to select shipping", "err", err)
		return
	}

	writeJSON(w, log, http.StatusOK, toResultView(res))
}

func (h CartHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostCheckout"
	log := slog.With("op", op)

	cID, ok := clientID(w, r)
	if !ok {
		return
	}

	order, err := h.cart.Checkout(r.Context(), cID)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			http.Error(w, "cart is empty", http.StatusConflict)
			return
		}
		http.Error(w, "failed to checkout", http.StatusInternalServerError)
		log.Error("failed to checkout", "err", err)
		return
	}

	log.Info("order placed", "orderNumber", order.OrderNumber)
	writeJSON(w, log, http.StatusOK, Order{
		OrderNumber: order.OrderNumber,
		Total:       order.Total,
	})
}

func (h CartHandler) GetShippingOptions(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetShippingOptions"
	log := slog.With("op", op)

	opts := toShippingOptionsView(domain.ShippingOptions())
	writeJSON(w, log, http.StatusOK, opts)
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

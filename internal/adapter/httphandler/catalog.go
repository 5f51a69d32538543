package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET  v1/products?search=&category=&on_sale=&limit=  (200 OK)
// POST v1/products JSON [catalog feed]                (202 Accepted, 400 Bad request)
// GET  v1/products/{productName}/views                (200 OK)

type CatalogHandler struct {
	provider port.ProductsProvider
	searcher port.ProductSearcher
	saver    port.ProductsSaver
	views    port.ProductViewsReader
}

func RegisterCatalog(
	mux *http.ServeMux,
	provider port.ProductsProvider,
	searcher port.ProductSearcher,
	saver port.ProductsSaver,
	views port.ProductViewsReader,
) {
	h := CatalogHandler{provider, searcher, saver, views}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("POST /v1/products", h.PostProducts)
	mux.HandleFunc("GET /v1/products/{productName}/views", h.GetProductViews)
}

// GetProducts lists the catalog. A search query additionally counts
// a view for every hit, so it requires the client id header.
func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	query := r.URL.Query()

	if search := query.Get("search"); search != "" {
		cID, ok := clientID(w, r)
		if !ok {
			return
		}
		ps, err := h.searcher.Search(r.Context(), cID, search)
		if err != nil {
			http.Error(w, "failed to search", http.StatusInternalServerError)
			log.Error("failed to search", "err", err)
			return
		}
		writeJSON(w, log, http.StatusOK, toProductsView(ps))
		return
	}

	q := domain.ProductQuery{
		Category:   query.Get("category"),
		OnSaleOnly: query.Get("on_sale") == "true",
	}
	if limit := query.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		q.Limit = n
	}

	ps, err := h.provider.ListProducts(r.Context(), q)
	if err != nil {
		http.Error(w, "failed to list products", http.StatusInternalServerError)
		log.Error("failed to list products", "err", err)
		return
	}

	writeJSON(w, log, http.StatusOK, toProductsView(ps))
}

func (h CatalogHandler) PostProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PostProducts"
	log := slog.With("op", op)

	var ps []Product
	if err := json.NewDecoder(r.Body).Decode(&ps); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	domainPs := make([]domain.Product, len(ps))
	for i, p := range ps {
		domainPs[i] = toDomainProduct(p)
	}

	if err := h.saver.SaveProducts(r.Context(), domainPs); err != nil {
		http.Error(
			w, "failed to accept products", http.StatusServiceUnavailable,
		)
		log.Error("failed to save products", "err", err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	if _, err := w.Write([]byte("Accepted")); err != nil {
		log.Error("failed to write response body", "err", err)
		return
	}

	log.Info("accepted", "nProducts", len(ps))
}

func (h CatalogHandler) GetProductViews(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProductViews"
	log := slog.With("op", op)

	productName := r.PathValue("productName")

	n, err := h.views.ProductViews(productName)
	if err != nil {
		http.Error(w, "failed to read views", http.StatusInternalServerError)
		log.Error("failed to read views", "err", err)
		return
	}

	writeJSON(w, log, http.StatusOK, ProductViews{
		ProductName: productName,
		Views:       n,
	})
}

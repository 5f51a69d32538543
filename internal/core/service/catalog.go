package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/debounce"
)

var _ port.ProductsProvider = (*CatalogService)(nil)
var _ port.ProductsSaver = (*CatalogService)(nil)
var _ port.ProductSearcher = (*CatalogService)(nil)
var _ port.ProductViewsReader = (*CatalogService)(nil)

// A CatalogService serves product browsing and search.
// Resolved searches emit product-view events for the
// popularity analytics stream.
type CatalogService struct {
	products       port.ProductsStorage
	views          port.ProductViewsProducer
	viewsTable     port.ProductViewsTable
	searchDebounce time.Duration
}

func NewCatalogService(
	products port.ProductsStorage,
	views port.ProductViewsProducer,
	viewsTable port.ProductViewsTable,
	searchDebounce time.Duration,
) CatalogService {
	return CatalogService{products, views, viewsTable, searchDebounce}
}

func (s CatalogService) ListProducts(
	ctx context.Context, q domain.ProductQuery,
) ([]domain.Product, error) {
	const op = "CatalogService.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.products.QueryProducts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (s CatalogService) SaveProducts(
	ctx context.Context, ps []domain.Product,
) error {
	const op = "CatalogService.SaveProducts"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.products.StoreProducts(ctx, ps); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CatalogService) ProductViews(productName string) (int64, error) {
	const op = "CatalogService.ProductViews"

	n, err := s.viewsTable.Views(productName)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// Search resolves the query against the catalog and emits one
// product-view event per hit. A failed emit does not fail the search.
func (s CatalogService) Search(
	ctx context.Context, clientID, query string,
) ([]domain.Product, error) {
	const op = "CatalogService.Search"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.products.QueryProducts(
		ctx, domain.ProductQuery{Search: query},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(ps) != 0 {
		evts := makeViewEvents(clientID, query, ps)
		if err := s.views.ProduceViews(ctx, evts); err != nil {
			log.Warn("failed to produce view events", "err", err)
		}
	}

	return ps, nil
}

// NewSearchSession returns a search-as-you-type session debouncing
// the query stream.
func (s CatalogService) NewSearchSession(clientID string) *SearchSession {
	return &SearchSession{
		svc:      s,
		clientID: clientID,
		deb:      debounce.New[string](s.searchDebounce),
		results:  make(chan []domain.Product, 1),
	}
}

func makeViewEvents(
	clientID, query string, ps []domain.Product,
) []domain.ProductView {
	evts := make([]domain.ProductView, 0, len(ps))
	for _, p := range ps {
		evts = append(evts, domain.ProductView{
			ClientID:    clientID,
			ProductName: p.Name,
			Category:    p.Category,
			Query:       query,
		})
	}
	return evts
}

// A SearchSession collapses a rapid query stream: only the latest
// query resolves, once per quiescent period.
type SearchSession struct {
	svc      CatalogService
	clientID string
	deb      *debounce.Debouncer[string]
	results  chan []domain.Product
}

// Push supplies the next keystroke state and restarts the delay.
func (ss *SearchSession) Push(query string) {
	ss.deb.Push(query)
}

// Flush resolves the pending query immediately.
func (ss *SearchSession) Flush() {
	ss.deb.Flush()
}

// Cancel suppresses the pending query.
func (ss *SearchSession) Cancel() {
	ss.deb.Cancel()
}

func (ss *SearchSession) Results() <-chan []domain.Product {
	return ss.results
}

// Run resolves debounced queries until the context is done.
func (ss *SearchSession) Run(ctx context.Context) {
	const op = "SearchSession.Run"
	log := slog.With("op", op)

	for {
		select {
		case <-ctx.Done():
			return
		case query := <-ss.deb.C():
			ps, err := ss.svc.Search(ctx, ss.clientID, query)
			if err != nil {
				log.Error("failed to search", "err", err)
				continue
			}
			select {
			case ss.results <- ps:
			case <-ctx.Done():
				return
			}
		}
	}
}

package port

import (
	"context"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// Inbound ports implemented by the core services.

type CartGetter interface {
	GetCart(context.Context, string) (domain.Cart, error)
}

type ItemAdder interface {
	AddItem(ctx context.Context, clientID, productID string) (domain.Result, error)
}

type QuantityUpdater interface {
	UpdateQuantity(ctx context.Context, clientID, productID string, quantity int) (domain.Result, error)
}

type ItemRemover interface {
	RemoveItem(ctx context.Context, clientID, productID string) error
}

type CartCleaner interface {
	ClearCart(ctx context.Context, clientID string) error
}

type ShippingSelector interface {
	SelectShipping(ctx context.Context, clientID, optionID string) (domain.Result, error)
}

type CheckoutPerformer interface {
	Checkout(ctx context.Context, clientID string) (domain.Order, error)
}

type ProductsProvider interface {
	ListProducts(context.Context, domain.ProductQuery) ([]domain.Product, error)
}

type ProductsSaver interface {
	SaveProducts(context.Context, []domain.Product) error
}

type ProductSearcher interface {
	Search(ctx context.Context, clientID, query string) ([]domain.Product, error)
}

type ProductViewsReader interface {
	ProductViews(productName string) (int64, error)
}

type ProfileGetter interface {
	GetProfile(ctx context.Context, clientID string) (domain.Profile, error)
}

type ProfileSaver interface {
	SaveProfile(ctx context.Context, clientID string, p domain.Profile) (domain.Result, error)
}

type OrdersSaver interface {
	SaveOrders(context.Context, []domain.Order) error
}

// Outbound ports implemented by the adapters.

type CartStorage interface {
	LoadCart(ctx context.Context, clientID string) (domain.Cart, error)
	StoreCart(ctx context.Context, clientID string, c domain.Cart) error
}

type ProfileStorage interface {
	LoadProfile(ctx context.Context, clientID string) (domain.Profile, error)
	StoreProfile(ctx context.Context, clientID string, p domain.Profile) error
}

type ProductsStorage interface {
	StoreProducts(context.Context, []domain.Product) error
	ProductByID(ctx context.Context, productID string) (domain.Product, error)
	QueryProducts(context.Context, domain.ProductQuery) ([]domain.Product, error)
}

type OrdersStorage interface {
	StoreOrders(context.Context, []domain.Order) error
}

type OrdersProducer interface {
	ProduceOrder(context.Context, domain.Order) error
}

type ProductViewsProducer interface {
	ProduceViews(context.Context, []domain.ProductView) error
}

type ProductViewsTable interface {
	Views(productName string) (int64, error)
}

type ProductViewsProcessor interface {
	runnerContextWg
	closer
}

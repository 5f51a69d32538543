package httphandler

import "github.com/niksmo/storefront/internal/core/domain"

type (
	Product struct {
		ProductID      string       `json:"product_id"`
		Name           string       `json:"name"`
		Brand          string       `json:"brand"`
		Category       string       `json:"category"`
		Description    string       `json:"description"`
		Price          ProductPrice `json:"price"`
		SalePrice      ProductPrice `json:"sale_price"`
		OnSale         bool         `json:"on_sale"`
		AvailableStock int          `json:"available_stock"`
		Tags           []string     `json:"tags"`
		Image          ProductImage `json:"image"`
	}

	ProductPrice struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	}

	ProductImage struct {
		URL string `json:"url"`
		Alt string `json:"alt"`
	}
)

type (
	CartItem struct {
		ProductID string       `json:"product_id"`
		Name      string       `json:"name"`
		Price     float64      `json:"price"`
		SalePrice float64      `json:"sale_price"`
		OnSale    bool         `json:"on_sale"`
		Quantity  int          `json:"quantity"`
		Stock     int          `json:"stock"`
		LineTotal float64      `json:"line_total"`
		Image     ProductImage `json:"image"`
	}

	Cart struct {
		Items        []CartItem `json:"items"`
		ShippingID   string     `json:"shipping_id"`
		ItemsTotal   float64    `json:"items_total"`
		TotalItems   int        `json:"total_items"`
		ShippingCost float64    `json:"shipping_cost"`
		Total        float64    `json:"total"`
	}

	ShippingOption struct {
		ID                string  `json:"id"`
		Name              string  `json:"name"`
		Price             float64 `json:"price"`
		EstimatedDelivery string  `json:"estimated_delivery"`
	}

	Order struct {
		OrderNumber int64   `json:"order_number"`
		Total       float64 `json:"total"`
	}
)

type (
	AddItemRequest struct {
		ProductID string `json:"product_id"`
	}

	UpdateQuantityRequest struct {
		Quantity int `json:"quantity"`
	}

	SelectShippingRequest struct {
		OptionID string `json:"option_id"`
	}

	Profile struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}

	Result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}

	ProductViews struct {
		ProductName string `json:"product_name"`
		Views       int64  `json:"views"`
	}
)

func toProductView(v domain.Product) Product {
	return Product{
		ProductID:   v.ProductID,
		Name:        v.Name,
		Brand:       v.Brand,
		Category:    v.Category,
		Description: v.Description,
		Price: ProductPrice{
			Amount:   v.Price.Amount,
			Currency: v.Price.Currency,
		},
		SalePrice: ProductPrice{
			Amount:   v.SalePrice.Amount,
			Currency: v.SalePrice.Currency,
		},
		OnSale:         v.OnSale,
		AvailableStock: v.AvailableStock,
		Tags:           v.Tags,
		Image:          ProductImage{URL: v.Image.URL, Alt: v.Image.Alt},
	}
}

func toProductsView(vs []domain.Product) []Product {
	ps := make([]Product, len(vs))
	for i, v := range vs {
		ps[i] = toProductView(v)
	}
	return ps
}

func toDomainProduct(p Product) domain.Product {
	return domain.Product{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Description: p.Description,
		Price: domain.ProductPrice{
			Amount:   p.Price.Amount,
			Currency: p.Price.Currency,
		},
		SalePrice: domain.ProductPrice{
			Amount:   p.SalePrice.Amount,
			Currency: p.SalePrice.Currency,
		},
		OnSale:         p.OnSale,
		AvailableStock: p.AvailableStock,
		Tags:           p.Tags,
		Image:          domain.ProductImage{URL: p.Image.URL, Alt: p.Image.Alt},
	}
}

func toCartView(c domain.Cart) Cart {
	items := make([]CartItem, len(c.Items))
	for i, item := range c.Items {
		items[i] = CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			SalePrice: item.SalePrice,
			OnSale:    item.OnSale,
			Quantity:  item.Quantity,
			Stock:     item.Stock,
			LineTotal: item.LineTotal(),
			Image: ProductImage{
				URL: item.Image.URL,
				Alt: item.Image.Alt,
			},
		}
	}

	return Cart{
		Items:        items,
		ShippingID:   c.ShippingID,
		ItemsTotal:   c.ItemsTotal(),
		TotalItems:   c.TotalItems(),
		ShippingCost: c.ShippingCost(),
		Total:        c.Total(),
	}
}

func toShippingOptionsView(vs []domain.ShippingOption) []ShippingOption {
	opts := make([]ShippingOption, len(vs))
	for i, v := range vs {
		opts[i] = ShippingOption{
			ID:                v.ID,
			Name:              v.Name,
			Price:             v.Price,
			EstimatedDelivery: v.EstimatedDelivery,
		}
	}
	return opts
}

func toResultView(v domain.Result) Result {
	return Result{Success: v.Success, Message: v.Message}
}

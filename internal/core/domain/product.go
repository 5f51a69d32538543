package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")

type (
	Product struct {
		ProductID      string
		Name           string
		Brand          string
		Category       string
		Description    string
		Price          ProductPrice
		SalePrice      ProductPrice
		OnSale         bool
		AvailableStock int
		Tags           []string
		Image          ProductImage
	}

	ProductPrice struct {
		Amount   float64
		Currency string
	}

	ProductImage struct {
		URL string
		Alt string
	}
)

// EffectivePrice is the price a buyer actually pays:
// the sale price while the product is on sale.
func (p Product) EffectivePrice() ProductPrice {
	if p.OnSale {
		return p.SalePrice
	}
	return p.Price
}

type ProductQuery struct {
	Search     string
	Category   string
	OnSaleOnly bool
	Limit      int
}

// A ProductView represents a single resolved search hit,
// used for the popularity analytics stream.
type ProductView struct {
	ClientID    string
	ProductName string
	Category    string
	Query       string
}

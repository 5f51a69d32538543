package domain

import "errors"

// MaxItemQuantity caps a single cart line regardless of stock.
const MaxItemQuantity = 99

const DefaultShippingID = "standard"

var (
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrMaxQuantity     = errors.New("maximum quantity reached")
	ErrItemNotFound    = errors.New("item is not in the cart")
	ErrUnknownShipping = errors.New("unknown shipping option")
	ErrEmptyCart       = errors.New("cart is empty")
)

type ShippingOption struct {
	ID                string
	Name              string
	Price             float64
	EstimatedDelivery string
}

var shippingOptions = []ShippingOption{
	{
		ID:                DefaultShippingID,
		Name:              "Standard Shipping",
		Price:             4.99,
		EstimatedDelivery: "5-7 business days",
	},
	{
		ID:                "express",
		Name:              "Express Shipping",
		Price:             12.99,
		EstimatedDelivery: "2-3 business days",
	},
	{
		ID:                "overnight",
		Name:              "Overnight Shipping",
		Price:             24.99,
		EstimatedDelivery: "next business day",
	},
}

// ShippingOptions returns the static shipping catalog.
func ShippingOptions() []ShippingOption {
	opts := make([]ShippingOption, len(shippingOptions))
	copy(opts, shippingOptions)
	return opts
}

func ShippingOptionByID(id string) (ShippingOption, bool) {
	for _, opt := range shippingOptions {
		if opt.ID == id {
			return opt, true
		}
	}
	return ShippingOption{}, false
}

// A CartItem is a snapshot of the product at the moment it was added,
// so a later catalog update does not silently change the line.
type CartItem struct {
	ProductID string
	Name      string
	Price     float64
	SalePrice float64
	OnSale    bool
	Quantity  int
	Stock     int
	Image     ProductImage
}

// UnitPrice is the sale price while the item is on sale.
func (i CartItem) UnitPrice() float64 {
	if i.OnSale {
		return i.SalePrice
	}
	return i.Price
}

func (i CartItem) LineTotal() float64 {
	return i.UnitPrice() * float64(i.Quantity)
}

// MaxQuantity is the upper clamp bound: min(stock, MaxItemQuantity).
func (i CartItem) MaxQuantity() int {
	if i.Stock < MaxItemQuantity {
		return i.Stock
	}
	return MaxItemQuantity
}

// A Cart holds the selected products with quantities and exactly one
// shipping option. Every quantity satisfies 1 <= q <= min(stock, 99).
type Cart struct {
	Items      []CartItem
	ShippingID string
}

func NewCart() Cart {
	return Cart{ShippingID: DefaultShippingID}
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) find(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) Item(productID string) (CartItem, bool) {
	i := c.find(productID)
	if i == -1 {
		return CartItem{}, false
	}
	return c.Items[i], true
}

// AddItem puts the product into the cart with quantity 1,
// or increments the existing line.
func (c *Cart) AddItem(p Product) error {
	if p.AvailableStock < 1 {
		return ErrOutOfStock
	}

	i := c.find(p.ProductID)
	if i == -1 {
		c.Items = append(c.Items, newCartItem(p))
		return nil
	}

	item := &c.Items[i]
	if item.Quantity >= item.MaxQuantity() {
		return ErrMaxQuantity
	}
	item.Quantity++
	return nil
}

// SetQuantity sets the line quantity. A quantity below one removes
// the line. A quantity above the clamp bound is rejected and the
// prior quantity is kept.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	i := c.find(productID)
	if i == -1 {
		return ErrItemNotFound
	}

	if quantity < 1 {
		c.RemoveItem(productID)
		return nil
	}

	if quantity > c.Items[i].MaxQuantity() {
		return ErrMaxQuantity
	}

	c.Items[i].Quantity = quantity
	return nil
}

func (c *Cart) RemoveItem(productID string) {
	i := c.find(productID)
	if i == -1 {
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// Clear drops all lines and resets the shipping selection.
func (c *Cart) Clear() {
	c.Items = nil
	c.ShippingID = DefaultShippingID
}

func (c *Cart) SelectShipping(optionID string) error {
	if _, ok := ShippingOptionByID(optionID); !ok {
		return ErrUnknownShipping
	}
	c.ShippingID = optionID
	return nil
}

func (c Cart) Shipping() ShippingOption {
	opt, ok := ShippingOptionByID(c.ShippingID)
	if !ok {
		opt, _ = ShippingOptionByID(DefaultShippingID)
	}
	return opt
}

// ItemsTotal is the sum of effective unit price times quantity.
func (c Cart) ItemsTotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// TotalItems is the sum of line quantities.
func (c Cart) TotalItems() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func (c Cart) ShippingCost() float64 {
	return c.Shipping().Price
}

// Total is ItemsTotal plus the selected shipping price.
func (c Cart) Total() float64 {
	return c.ItemsTotal() + c.ShippingCost()
}

func newCartItem(p Product) CartItem {
	return CartItem{
		ProductID: p.ProductID,
		Name:      p.Name,
		Price:     p.Price.Amount,
		SalePrice: p.SalePrice.Amount,
		OnSale:    p.OnSale,
		Quantity:  1,
		Stock:     p.AvailableStock,
		Image:     p.Image,
	}
}

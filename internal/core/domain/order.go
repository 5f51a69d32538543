package domain

import "time"

type Order struct {
	OrderNumber int64
	ClientID    string
	Items       []CartItem
	ItemsTotal  float64
	Shipping    ShippingOption
	Total       float64
	CreatedAt   time.Time
}

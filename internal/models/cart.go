package models

import "time"

// Cart is the server-side source of truth. Clients may keep a local mirror,
// but on any reachable fetch the server copy wins.
type Cart struct {
	ID              int        `json:"id"`
	UserID          int        `json:"user_id"`
	Items           []CartItem `json:"items"`
	PromoCode       *string    `json:"promo_code,omitempty"`
	DiscountPercent float64    `json:"discount_percent,omitempty"`
	Subtotal        float64    `json:"subtotal"`
	Discount        float64    `json:"discount"`
	Total           float64    `json:"total"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type CartItem struct {
	ProductID    int     `json:"product_id"`
	ProductTitle string  `json:"product_title,omitempty"`
	Price        float64 `json:"price"` // snapshot taken at add time
	Quantity     int     `json:"quantity"`
	Duration     int     `json:"duration"` // rental days
	Subtotal     float64 `json:"subtotal"`
}

type AddCartItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
	Duration  int `json:"duration"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity,omitempty"`
	Duration *int `json:"duration,omitempty"`
}

type ReplaceCartRequest struct {
	Items []CartItem `json:"items"`
}

type ApplyPromoRequest struct {
	Code string `json:"code"`
}

type PromoCode struct {
	ID      int     `json:"id"`
	Code    string  `json:"code"`
	Percent float64 `json:"percent"`
	Active  bool    `json:"active"`
}

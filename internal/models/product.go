package models

import "time"

type Product struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Price        float64    `json:"price"` // per day
	Category     string     `json:"category"`
	Availability string     `json:"availability"`
	UserID       int        `json:"user_id"`
	User         struct {
		ID         int     `json:"id"`
		Name       string  `json:"name"`
		Surname    string  `json:"surname"`
		AvatarPath *string `json:"avatar_path,omitempty"`
	} `json:"user"`
	Images        []ProductImage `json:"images"`
	AvgRating     float64        `json:"avg_rating"`
	ReviewsCount  int            `json:"reviews_count"`
	MinRentalDays int            `json:"min_rental_days"`
	MaxRentalDays int            `json:"max_rental_days"`
	Address       string         `json:"address,omitempty"`
	Latitude      string         `json:"latitude,omitempty"`
	Longitude     string         `json:"longitude,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     *time.Time     `json:"updated_at,omitempty"`
}

type ProductImage struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

type ProductFilterRequest struct {
	Category     string  `json:"category"`
	PriceFrom    float64 `json:"price_from"`
	PriceTo      float64 `json:"price_to"`
	Availability string  `json:"availability"`
	Search       string  `json:"search"`
	Page         int     `json:"page"`
	Limit        int     `json:"limit"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

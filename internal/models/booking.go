package models

import "time"

type Booking struct {
	ID            int          `json:"id"`
	ProductID     int          `json:"product_id"`
	UserID        int          `json:"user_id"`
	StartDate     time.Time    `json:"start_date"`
	EndDate       time.Time    `json:"end_date"`
	Quantity      int          `json:"quantity"`
	TotalPrice    float64      `json:"total_price"`
	Status        string       `json:"status"`
	PaymentStatus string       `json:"payment_status"`
	PaymentMethod string       `json:"payment_method,omitempty"`
	MeetingArea   *MeetingArea `json:"meeting_area,omitempty"`

	ProductTitle   string `json:"product_title,omitempty"`
	ProductOwnerID int    `json:"-"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type MeetingArea struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CreateBookingRequest struct {
	ProductID   int          `json:"product_id"`
	StartDate   time.Time    `json:"start_date"`
	EndDate     time.Time    `json:"end_date"`
	Quantity    int          `json:"quantity"`
	MeetingArea *MeetingArea `json:"meeting_area,omitempty"`
}

type CheckoutRequest struct {
	StartDate   time.Time    `json:"start_date"`
	MeetingArea *MeetingArea `json:"meeting_area,omitempty"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

package models

import "time"

// Notification types written by the workflows.
const (
	NotificationTypePayment = "payment"
	NotificationTypeRefund  = "refund"
	NotificationTypeReview  = "review"
	NotificationTypeBooking = "booking"
)

type Notification struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"` // recipient
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	RelatedType string    `json:"related_type,omitempty"`
	RelatedID   int       `json:"related_id,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

type DeviceToken struct {
	ID       int    `json:"id"`
	UserID   int    `json:"user_id"`
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

type RegisterDeviceTokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

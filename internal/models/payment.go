package models

import "time"

type Payment struct {
	ID            int        `json:"id"`
	UserID        int        `json:"user_id"`
	BookingIDs    []int      `json:"booking_ids"`
	Bookings      []Booking  `json:"bookings,omitempty"`
	Amount        float64    `json:"amount"`
	PaymentMethod string     `json:"payment_method"`
	Status        string     `json:"status"`
	TransactionID string     `json:"transaction_id"`
	RefundReason  *string    `json:"refund_reason,omitempty"`
	RefundDate    *time.Time `json:"refund_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ProcessPaymentRequest struct {
	BookingIDs    []int   `json:"booking_ids"`
	PaymentMethod string  `json:"payment_method"`
	Amount        float64 `json:"amount"`
}

type RefundRequest struct {
	PaymentID int    `json:"payment_id"`
	Reason    string `json:"reason"`
}

const PaymentMethodCashOnDelivery = "cash_on_delivery"

package services

import (
	"context"
	"time"

	"rentedBack/internal/models"
)

// Narrow store interfaces over the repositories. Workflows depend on these
// rather than the concrete repos so they can be exercised with fakes.

type ProductStore interface {
	GetProductByID(ctx context.Context, id int) (models.Product, error)
	SetAvailability(ctx context.Context, id int, availability string) error
}

type BookingStore interface {
	CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error)
	GetBookingByID(ctx context.Context, id int) (models.Booking, error)
	GetBookingsByUser(ctx context.Context, userID int) ([]models.Booking, error)
	UpdateStatuses(ctx context.Context, id int, status, paymentStatus string) error
	UpdateStatus(ctx context.Context, id int, status string) error
}

type PaymentStore interface {
	CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error)
	GetPaymentByID(ctx context.Context, id int) (models.Payment, error)
	MarkRefunded(ctx context.Context, id int, reason string, at time.Time) error
	GetHistoryByUser(ctx context.Context, userID int) ([]models.Payment, error)
}

type CartStore interface {
	EnsureCart(ctx context.Context, userID int) (int, error)
	GetCartByUser(ctx context.Context, userID int) (models.Cart, error)
	UpsertItem(ctx context.Context, cartID int, item models.CartItem) error
	UpdateItem(ctx context.Context, cartID, productID int, quantity, duration *int) error
	RemoveItem(ctx context.Context, cartID, productID int) error
	ReplaceItems(ctx context.Context, cartID int, items []models.CartItem) error
	Clear(ctx context.Context, cartID int) error
	SetPromo(ctx context.Context, cartID int, code string, percent float64) error
	GetPromoByCode(ctx context.Context, code string) (models.PromoCode, error)
}

type ReviewStore interface {
	CreateReview(ctx context.Context, rev models.Review) (models.Review, error)
	ExistsForBooking(ctx context.Context, userID, bookingID int) (bool, error)
	GetReviewByID(ctx context.Context, id int) (models.Review, error)
	GetReviewsByProductID(ctx context.Context, productID int) ([]models.Review, error)
	UpdateReview(ctx context.Context, rev models.Review) error
	DeleteReview(ctx context.Context, id int) error
	RecomputeProductRating(ctx context.Context, productID int) error
}

type NotificationStore interface {
	CreateBatch(ctx context.Context, notifications []models.Notification) error
	ListByUser(ctx context.Context, userID int) ([]models.Notification, error)
	GetByID(ctx context.Context, id int) (models.Notification, error)
	MarkRead(ctx context.Context, id int) error
	MarkAllRead(ctx context.Context, userID int) error
	Delete(ctx context.Context, id int) error
	RegisterDeviceToken(ctx context.Context, t models.DeviceToken) error
	DeviceTokensByUser(ctx context.Context, userID int) ([]string, error)
}

// Notifier is the best-effort push channel (websocket, FCM) used after a
// notification row is stored. Implementations must not block the request.
type Notifier interface {
	Push(ctx context.Context, n models.Notification)
}

package models

import "errors"

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrUserNotFound       = errors.New("models: user not found")

	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")

	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrInvalidPromoCode = errors.New("invalid promo code")

	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingInvalid      = errors.New("one or more bookings invalid or not yours")
	ErrBookingNotCompleted = errors.New("booking is not completed")
	ErrInvalidDateRange    = errors.New("invalid rental date range")
	ErrInvalidRentalPeriod = errors.New("rental period outside product limits")
	ErrInvalidTransition   = errors.New("invalid status transition")

	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentNotRefundable = errors.New("payment is not refundable")

	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("booking already reviewed")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")

	ErrNotificationNotFound = errors.New("notification not found")

	ErrNotOwner = errors.New("not the owner of this resource")
)

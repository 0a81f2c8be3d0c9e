package services

import (
	"context"
	"fmt"
	"time"

	"rentedBack/internal/fsm"
	"rentedBack/internal/models"
	"rentedBack/internal/pricing"
)

type BookingService struct {
	Bookings      BookingStore
	Products      ProductStore
	Carts         CartStore
	Notifications NotificationStore
	Notifier      Notifier
}

// CreateBooking reserves a product for a date range. The booking starts
// pending/pending; payment moves it forward.
func (s *BookingService) CreateBooking(ctx context.Context, userID int, req models.CreateBookingRequest) (models.Booking, error) {
	if !req.EndDate.After(req.StartDate) {
		return models.Booking{}, models.ErrInvalidDateRange
	}
	product, err := s.Products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return models.Booking{}, err
	}
	if product.Availability != fsm.Available {
		return models.Booking{}, models.ErrProductUnavailable
	}

	days := pricing.RentalDays(req.EndDate.Sub(req.StartDate).Hours())
	if product.MinRentalDays > 0 && days < product.MinRentalDays {
		return models.Booking{}, models.ErrInvalidRentalPeriod
	}
	if product.MaxRentalDays > 0 && days > product.MaxRentalDays {
		return models.Booking{}, models.ErrInvalidRentalPeriod
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	booking := models.Booking{
		ProductID:     req.ProductID,
		UserID:        userID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Quantity:      quantity,
		TotalPrice:    pricing.Subtotal(product.Price, quantity, days),
		Status:        fsm.BookingPending,
		PaymentStatus: fsm.PayStatusPending,
		MeetingArea:   req.MeetingArea,
	}
	booking, err = s.Bookings.CreateBooking(ctx, booking)
	if err != nil {
		return models.Booking{}, err
	}
	booking.ProductTitle = product.Title
	booking.ProductOwnerID = product.UserID

	s.notifyOwner(ctx, product.UserID, models.Notification{
		Type:        models.NotificationTypeBooking,
		Title:       "New booking request",
		Message:     fmt.Sprintf("Your listing %q has a new booking request", product.Title),
		RelatedType: "booking",
		RelatedID:   booking.ID,
	})
	return booking, nil
}

// CheckoutCart turns every cart entry into a pending booking and clears the
// cart once all bookings were created. Each cart line becomes its own
// booking; a failure part-way leaves the bookings created so far.
func (s *BookingService) CheckoutCart(ctx context.Context, userID int, req models.CheckoutRequest) ([]models.Booking, error) {
	cart, err := s.Carts.GetCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, models.ErrCartEmpty
	}

	start := req.StartDate
	if start.IsZero() {
		start = time.Now()
	}

	bookings := make([]models.Booking, 0, len(cart.Items))
	for _, item := range cart.Items {
		booking, err := s.CreateBooking(ctx, userID, models.CreateBookingRequest{
			ProductID:   item.ProductID,
			StartDate:   start,
			EndDate:     start.AddDate(0, 0, item.Duration),
			Quantity:    item.Quantity,
			MeetingArea: req.MeetingArea,
		})
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	cartID, err := s.Carts.EnsureCart(ctx, userID)
	if err != nil {
		return bookings, err
	}
	if err := s.Carts.Clear(ctx, cartID); err != nil {
		return bookings, err
	}
	return bookings, nil
}

func (s *BookingService) GetBookingsByUser(ctx context.Context, userID int) ([]models.Booking, error) {
	return s.Bookings.GetBookingsByUser(ctx, userID)
}

func (s *BookingService) GetBookingByID(ctx context.Context, userID int, role string, id int) (models.Booking, error) {
	booking, err := s.Bookings.GetBookingByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.UserID != userID && booking.ProductOwnerID != userID && role != "admin" {
		return models.Booking{}, models.ErrNotOwner
	}
	return booking, nil
}

// UpdateStatus applies a status transition. The renter may cancel, the
// product owner may confirm progress and completion, admins may do either.
// Terminal statuses release the product back to available.
func (s *BookingService) UpdateStatus(ctx context.Context, userID int, role string, id int, newStatus string) (models.Booking, error) {
	if !fsm.ValidBookingStatus(newStatus) {
		return models.Booking{}, models.ErrInvalidTransition
	}
	booking, err := s.Bookings.GetBookingByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}

	isRenter := booking.UserID == userID
	isOwner := booking.ProductOwnerID == userID
	isAdmin := role == "admin"
	switch {
	case isAdmin:
	case isRenter && newStatus == fsm.BookingCancelled:
	case isOwner && (newStatus == fsm.BookingCompleted || newStatus == fsm.BookingConfirmed):
	default:
		return models.Booking{}, models.ErrNotOwner
	}

	if !fsm.CanTransitionBooking(booking.Status, newStatus) {
		return models.Booking{}, models.ErrInvalidTransition
	}
	if err := s.Bookings.UpdateStatus(ctx, id, newStatus); err != nil {
		return models.Booking{}, err
	}
	booking.Status = newStatus

	if fsm.Terminal(newStatus) {
		if err := s.Products.SetAvailability(ctx, booking.ProductID, fsm.Available); err != nil {
			return booking, err
		}
	}

	recipient := booking.ProductOwnerID
	if isOwner {
		recipient = booking.UserID
	}
	if recipient != userID {
		s.notifyOwner(ctx, recipient, models.Notification{
			Type:        models.NotificationTypeBooking,
			Title:       "Booking updated",
			Message:     fmt.Sprintf("Booking for %q is now %s", booking.ProductTitle, newStatus),
			RelatedType: "booking",
			RelatedID:   booking.ID,
		})
	}
	return booking, nil
}

func (s *BookingService) notifyOwner(ctx context.Context, recipient int, n models.Notification) {
	if recipient == 0 || s.Notifications == nil {
		return
	}
	n.UserID = recipient
	if err := s.Notifications.CreateBatch(ctx, []models.Notification{n}); err != nil {
		// Booking writes already landed; the missing notification is not
		// compensated.
		return
	}
	if s.Notifier != nil {
		s.Notifier.Push(ctx, n)
	}
}

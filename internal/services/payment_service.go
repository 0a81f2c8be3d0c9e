package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentedBack/internal/fsm"
	"rentedBack/internal/models"
)

type PaymentService struct {
	Payments      PaymentStore
	Bookings      BookingStore
	Products      ProductStore
	Notifications NotificationStore
	Notifier      Notifier // optional push channel
}

// ProcessPayment runs the checkout workflow. Validation is atomic: nothing is
// written unless every booking resolves and belongs to the paying user. The
// commit is not: the payment insert, each booking update, each availability
// update and the notification batch are independent writes, so a failure
// mid-sequence leaves the earlier writes in place and the caller must
// reconcile by re-reading.
func (s *PaymentService) ProcessPayment(ctx context.Context, userID int, req models.ProcessPaymentRequest) (models.Payment, error) {
	if len(req.BookingIDs) == 0 {
		return models.Payment{}, models.ErrBookingInvalid
	}

	bookings := make([]models.Booking, 0, len(req.BookingIDs))
	for _, id := range req.BookingIDs {
		b, err := s.Bookings.GetBookingByID(ctx, id)
		if err != nil || b.UserID != userID {
			return models.Payment{}, models.ErrBookingInvalid
		}
		bookings = append(bookings, b)
	}

	// No gateway call is made; settlement is assumed except for cash on
	// delivery, which stays pending until handoff.
	cod := req.PaymentMethod == models.PaymentMethodCashOnDelivery
	paymentStatus := fsm.PaymentCompleted
	bookingStatus := fsm.BookingConfirmed
	payStatus := fsm.PayStatusPaid
	if cod {
		paymentStatus = fsm.PaymentPending
		bookingStatus = fsm.BookingPending
		payStatus = fsm.PayStatusPending
	}

	payment := models.Payment{
		UserID:        userID,
		BookingIDs:    req.BookingIDs,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        paymentStatus,
		TransactionID: uuid.New().String(),
	}
	payment, err := s.Payments.CreatePayment(ctx, payment)
	if err != nil {
		return models.Payment{}, err
	}

	for _, b := range bookings {
		if err := s.Bookings.UpdateStatuses(ctx, b.ID, bookingStatus, payStatus); err != nil {
			return models.Payment{}, err
		}
		if err := s.Products.SetAvailability(ctx, b.ProductID, fsm.Booked); err != nil {
			return models.Payment{}, err
		}
	}

	notifications := make([]models.Notification, 0, len(bookings))
	for _, b := range bookings {
		if b.ProductOwnerID == 0 {
			continue
		}
		notifications = append(notifications, models.Notification{
			UserID:      b.ProductOwnerID,
			Type:        models.NotificationTypePayment,
			Title:       "New rental payment",
			Message:     fmt.Sprintf("Your listing %q was booked and paid via %s", b.ProductTitle, req.PaymentMethod),
			RelatedType: "booking",
			RelatedID:   b.ID,
		})
	}
	if err := s.Notifications.CreateBatch(ctx, notifications); err != nil {
		return models.Payment{}, err
	}
	if s.Notifier != nil {
		for _, n := range notifications {
			s.Notifier.Push(ctx, n)
		}
	}
	return payment, nil
}

// RequestRefund refunds a completed payment owned by the requester, then
// cancels every associated booking and releases its product back to
// available. Like checkout, the cancellation writes are sequential and
// uncompensated.
func (s *PaymentService) RequestRefund(ctx context.Context, userID int, req models.RefundRequest) (models.Payment, error) {
	payment, err := s.Payments.GetPaymentByID(ctx, req.PaymentID)
	if err != nil {
		return models.Payment{}, err
	}
	if payment.UserID != userID {
		return models.Payment{}, models.ErrNotOwner
	}
	if payment.Status != fsm.PaymentCompleted {
		return models.Payment{}, models.ErrPaymentNotRefundable
	}

	now := time.Now()
	if err := s.Payments.MarkRefunded(ctx, payment.ID, req.Reason, now); err != nil {
		return models.Payment{}, err
	}
	payment.Status = fsm.PaymentRefunded
	payment.RefundReason = &req.Reason
	payment.RefundDate = &now

	notifications := []models.Notification{}
	for _, bookingID := range payment.BookingIDs {
		b, err := s.Bookings.GetBookingByID(ctx, bookingID)
		if err != nil {
			return payment, err
		}
		if err := s.Bookings.UpdateStatuses(ctx, bookingID, fsm.BookingCancelled, fsm.PayStatusRefunded); err != nil {
			return payment, err
		}
		if err := s.Products.SetAvailability(ctx, b.ProductID, fsm.Available); err != nil {
			return payment, err
		}
		if b.ProductOwnerID != 0 {
			notifications = append(notifications, models.Notification{
				UserID:      b.ProductOwnerID,
				Type:        models.NotificationTypeRefund,
				Title:       "Booking refunded",
				Message:     fmt.Sprintf("The booking for %q was refunded and cancelled", b.ProductTitle),
				RelatedType: "booking",
				RelatedID:   b.ID,
			})
		}
	}
	if err := s.Notifications.CreateBatch(ctx, notifications); err != nil {
		return payment, err
	}
	if s.Notifier != nil {
		for _, n := range notifications {
			s.Notifier.Push(ctx, n)
		}
	}
	return payment, nil
}

func (s *PaymentService) GetHistory(ctx context.Context, userID int) ([]models.Payment, error) {
	return s.Payments.GetHistoryByUser(ctx, userID)
}

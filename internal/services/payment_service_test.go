package services

import (
	"context"
	"errors"
	"testing"

	"rentedBack/internal/fsm"
	"rentedBack/internal/models"
)

func newPaymentFixture() (*PaymentService, *fakePaymentStore, *fakeBookingStore, *fakeProductStore, *fakeNotificationStore) {
	products := newFakeProductStore(
		models.Product{ID: 1, Title: "Drill", Price: 10, Availability: fsm.Available, UserID: 50},
		models.Product{ID: 2, Title: "Tent", Price: 20, Availability: fsm.Available, UserID: 60},
	)
	bookings := newFakeBookingStore(
		models.Booking{ID: 1, ProductID: 1, UserID: 7, Status: fsm.BookingPending, PaymentStatus: fsm.PayStatusPending, ProductTitle: "Drill", ProductOwnerID: 50},
		models.Booking{ID: 2, ProductID: 2, UserID: 7, Status: fsm.BookingPending, PaymentStatus: fsm.PayStatusPending, ProductTitle: "Tent", ProductOwnerID: 60},
		models.Booking{ID: 3, ProductID: 2, UserID: 8, Status: fsm.BookingPending, PaymentStatus: fsm.PayStatusPending, ProductTitle: "Tent", ProductOwnerID: 60},
	)
	payments := newFakePaymentStore()
	notifications := newFakeNotificationStore()
	svc := &PaymentService{
		Payments:      payments,
		Bookings:      bookings,
		Products:      products,
		Notifications: notifications,
	}
	return svc, payments, bookings, products, notifications
}

func TestProcessPaymentRejectsForeignBooking(t *testing.T) {
	svc, payments, bookings, _, notifications := newPaymentFixture()

	// Booking 3 belongs to user 8; the whole request must fail before any write.
	_, err := svc.ProcessPayment(context.Background(), 7, models.ProcessPaymentRequest{
		BookingIDs:    []int{1, 3},
		PaymentMethod: "card",
		Amount:        100,
	})
	if !errors.Is(err, models.ErrBookingInvalid) {
		t.Fatalf("expected ErrBookingInvalid, got %v", err)
	}
	if len(payments.payments) != 0 {
		t.Fatalf("expected no payment created, got %d", len(payments.payments))
	}
	if b := bookings.bookings[1]; b.Status != fsm.BookingPending || b.PaymentStatus != fsm.PayStatusPending {
		t.Fatalf("booking 1 mutated: %s/%s", b.Status, b.PaymentStatus)
	}
	if len(notifications.notifications) != 0 {
		t.Fatalf("expected no notifications, got %d", len(notifications.notifications))
	}
}

func TestProcessPaymentRejectsMissingBooking(t *testing.T) {
	svc, payments, _, _, _ := newPaymentFixture()
	_, err := svc.ProcessPayment(context.Background(), 7, models.ProcessPaymentRequest{
		BookingIDs:    []int{1, 99},
		PaymentMethod: "card",
		Amount:        100,
	})
	if !errors.Is(err, models.ErrBookingInvalid) {
		t.Fatalf("expected ErrBookingInvalid, got %v", err)
	}
	if len(payments.payments) != 0 {
		t.Fatalf("expected no payment created")
	}
}

func TestProcessPaymentCashOnDelivery(t *testing.T) {
	svc, _, bookings, products, notifications := newPaymentFixture()

	payment, err := svc.ProcessPayment(context.Background(), 7, models.ProcessPaymentRequest{
		BookingIDs:    []int{1, 2},
		PaymentMethod: models.PaymentMethodCashOnDelivery,
		Amount:        150,
	})
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}
	if payment.Status != fsm.PaymentPending {
		t.Fatalf("expected payment pending, got %s", payment.Status)
	}
	if payment.TransactionID == "" {
		t.Fatal("expected transaction id to be set")
	}
	for _, id := range []int{1, 2} {
		b := bookings.bookings[id]
		if b.Status != fsm.BookingPending || b.PaymentStatus != fsm.PayStatusPending {
			t.Fatalf("booking %d: expected pending/pending, got %s/%s", id, b.Status, b.PaymentStatus)
		}
	}
	if len(notifications.notifications) != 2 {
		t.Fatalf("expected one notification per product owner, got %d", len(notifications.notifications))
	}
	if notifications.batches != 1 {
		t.Fatalf("expected a single batch insert, got %d", notifications.batches)
	}
	owners := map[int]bool{}
	for _, n := range notifications.notifications {
		owners[n.UserID] = true
		if n.Type != models.NotificationTypePayment {
			t.Fatalf("expected payment notification, got %s", n.Type)
		}
	}
	if !owners[50] || !owners[60] {
		t.Fatalf("expected notifications for owners 50 and 60, got %v", owners)
	}
	if products.products[1].Availability != fsm.Booked {
		t.Fatalf("expected product booked after checkout")
	}
}

func TestProcessPaymentPrepaid(t *testing.T) {
	svc, _, bookings, _, _ := newPaymentFixture()

	payment, err := svc.ProcessPayment(context.Background(), 7, models.ProcessPaymentRequest{
		BookingIDs:    []int{1},
		PaymentMethod: "card",
		Amount:        60,
	})
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}
	if payment.Status != fsm.PaymentCompleted {
		t.Fatalf("expected payment completed, got %s", payment.Status)
	}
	b := bookings.bookings[1]
	if b.Status != fsm.BookingConfirmed || b.PaymentStatus != fsm.PayStatusPaid {
		t.Fatalf("expected confirmed/paid, got %s/%s", b.Status, b.PaymentStatus)
	}
}

func TestRequestRefundRequiresCompletedPayment(t *testing.T) {
	svc, payments, bookings, _, _ := newPaymentFixture()
	payments.payments[1] = models.Payment{ID: 1, UserID: 7, Status: fsm.PaymentPending, BookingIDs: []int{1}}

	_, err := svc.RequestRefund(context.Background(), 7, models.RefundRequest{PaymentID: 1, Reason: "changed my mind"})
	if !errors.Is(err, models.ErrPaymentNotRefundable) {
		t.Fatalf("expected ErrPaymentNotRefundable, got %v", err)
	}
	if payments.payments[1].Status != fsm.PaymentPending {
		t.Fatal("payment must not be mutated")
	}
	if bookings.bookings[1].Status != fsm.BookingPending {
		t.Fatal("booking must not be mutated")
	}
}

func TestRequestRefundRejectsForeignPayment(t *testing.T) {
	svc, payments, _, _, _ := newPaymentFixture()
	payments.payments[1] = models.Payment{ID: 1, UserID: 8, Status: fsm.PaymentCompleted, BookingIDs: []int{1}}

	_, err := svc.RequestRefund(context.Background(), 7, models.RefundRequest{PaymentID: 1, Reason: "nope"})
	if !errors.Is(err, models.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestRequestRefundCancelsBookingsAndRestoresAvailability(t *testing.T) {
	svc, payments, bookings, products, notifications := newPaymentFixture()

	if _, err := svc.ProcessPayment(context.Background(), 7, models.ProcessPaymentRequest{
		BookingIDs:    []int{1, 2},
		PaymentMethod: "card",
		Amount:        150,
	}); err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}

	payment, err := svc.RequestRefund(context.Background(), 7, models.RefundRequest{PaymentID: 1, Reason: "damaged item"})
	if err != nil {
		t.Fatalf("RequestRefund: %v", err)
	}
	if payment.Status != fsm.PaymentRefunded {
		t.Fatalf("expected refunded, got %s", payment.Status)
	}
	if payment.RefundReason == nil || *payment.RefundReason != "damaged item" {
		t.Fatal("expected refund reason stamped")
	}
	if payment.RefundDate == nil {
		t.Fatal("expected refund date stamped")
	}
	stored := payments.payments[1]
	if stored.Status != fsm.PaymentRefunded {
		t.Fatalf("stored payment not refunded: %s", stored.Status)
	}
	for _, id := range []int{1, 2} {
		b := bookings.bookings[id]
		if b.Status != fsm.BookingCancelled || b.PaymentStatus != fsm.PayStatusRefunded {
			t.Fatalf("booking %d: expected cancelled/refunded, got %s/%s", id, b.Status, b.PaymentStatus)
		}
	}
	// Availability is restored in the multi-booking path as well.
	for _, id := range []int{1, 2} {
		if products.products[id].Availability != fsm.Available {
			t.Fatalf("product %d: expected available after refund, got %s", id, products.products[id].Availability)
		}
	}
	refunds := 0
	for _, n := range notifications.notifications {
		if n.Type == models.NotificationTypeRefund {
			refunds++
		}
	}
	if refunds != 2 {
		t.Fatalf("expected 2 refund notifications, got %d", refunds)
	}
}

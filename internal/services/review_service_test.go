package services

import (
	"context"
	"errors"
	"testing"

	"rentedBack/internal/fsm"
	"rentedBack/internal/models"
)

func newReviewFixture() (*ReviewService, *fakeReviewStore, *fakeProductStore, *fakeBookingStore, *fakeNotificationStore) {
	products := newFakeProductStore(
		models.Product{ID: 1, Title: "Drill", Availability: fsm.Available, UserID: 50},
	)
	bookings := newFakeBookingStore(
		models.Booking{ID: 1, ProductID: 1, UserID: 7, Status: fsm.BookingCompleted, ProductOwnerID: 50},
		models.Booking{ID: 2, ProductID: 1, UserID: 7, Status: fsm.BookingConfirmed, ProductOwnerID: 50},
		models.Booking{ID: 3, ProductID: 1, UserID: 8, Status: fsm.BookingCompleted, ProductOwnerID: 50},
	)
	reviews := newFakeReviewStore(products)
	notifications := newFakeNotificationStore()
	svc := &ReviewService{
		Reviews:       reviews,
		Bookings:      bookings,
		Products:      products,
		Notifications: notifications,
	}
	return svc, reviews, products, bookings, notifications
}

func TestCreateReviewRecomputesAggregate(t *testing.T) {
	svc, _, products, _, notifications := newReviewFixture()
	ctx := context.Background()

	bookingID := 1
	if _, err := svc.CreateReview(ctx, 7, models.CreateReviewRequest{ProductID: 1, Rating: 4, Comment: "solid", BookingID: &bookingID}); err != nil {
		t.Fatalf("first review: %v", err)
	}
	otherBooking := 3
	if _, err := svc.CreateReview(ctx, 8, models.CreateReviewRequest{ProductID: 1, Rating: 2, Comment: "meh", BookingID: &otherBooking}); err != nil {
		t.Fatalf("second review: %v", err)
	}

	p := products.products[1]
	if p.AvgRating != 3 {
		t.Fatalf("expected avg rating 3, got %.2f", p.AvgRating)
	}
	if p.ReviewsCount != 2 {
		t.Fatalf("expected 2 reviews, got %d", p.ReviewsCount)
	}
	if len(notifications.notifications) != 2 {
		t.Fatalf("expected owner notified per review, got %d", len(notifications.notifications))
	}
}

func TestDeleteLastReviewResetsAggregate(t *testing.T) {
	svc, _, products, _, _ := newReviewFixture()
	ctx := context.Background()

	rev, err := svc.CreateReview(ctx, 7, models.CreateReviewRequest{ProductID: 1, Rating: 5, Comment: "great"})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if products.products[1].AvgRating != 5 || products.products[1].ReviewsCount != 1 {
		t.Fatalf("aggregate not materialized after create")
	}
	if err := svc.DeleteReview(ctx, 7, "user", rev.ID); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	p := products.products[1]
	if p.AvgRating != 0 || p.ReviewsCount != 0 {
		t.Fatalf("expected aggregate reset to zero, got %.2f/%d", p.AvgRating, p.ReviewsCount)
	}
}

func TestCreateReviewInvalidRating(t *testing.T) {
	svc, _, _, _, _ := newReviewFixture()
	for _, rating := range []int{0, 6, -1} {
		_, err := svc.CreateReview(context.Background(), 7, models.CreateReviewRequest{ProductID: 1, Rating: rating})
		if !errors.Is(err, models.ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestCreateReviewRequiresCompletedBooking(t *testing.T) {
	svc, _, _, _, _ := newReviewFixture()
	bookingID := 2 // confirmed, not completed
	_, err := svc.CreateReview(context.Background(), 7, models.CreateReviewRequest{ProductID: 1, Rating: 4, BookingID: &bookingID})
	if !errors.Is(err, models.ErrBookingNotCompleted) {
		t.Fatalf("expected ErrBookingNotCompleted, got %v", err)
	}
}

func TestCreateReviewForeignBooking(t *testing.T) {
	svc, _, _, _, _ := newReviewFixture()
	bookingID := 3 // belongs to user 8
	_, err := svc.CreateReview(context.Background(), 7, models.CreateReviewRequest{ProductID: 1, Rating: 4, BookingID: &bookingID})
	if !errors.Is(err, models.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestCreateReviewDuplicateBooking(t *testing.T) {
	svc, _, _, _, _ := newReviewFixture()
	ctx := context.Background()

	bookingID := 1
	if _, err := svc.CreateReview(ctx, 7, models.CreateReviewRequest{ProductID: 1, Rating: 4, BookingID: &bookingID}); err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err := svc.CreateReview(ctx, 7, models.CreateReviewRequest{ProductID: 1, Rating: 5, BookingID: &bookingID})
	if !errors.Is(err, models.ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestUpdateReviewAuthorOnly(t *testing.T) {
	svc, _, products, _, _ := newReviewFixture()
	ctx := context.Background()

	rev, err := svc.CreateReview(ctx, 7, models.CreateReviewRequest{ProductID: 1, Rating: 4})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	newRating := 2
	if _, err := svc.UpdateReview(ctx, 8, "user", rev.ID, models.UpdateReviewRequest{Rating: &newRating}); !errors.Is(err, models.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner for non-author, got %v", err)
	}
	if _, err := svc.UpdateReview(ctx, 8, "admin", rev.ID, models.UpdateReviewRequest{Rating: &newRating}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if products.products[1].AvgRating != 2 {
		t.Fatalf("expected aggregate recomputed to 2, got %.2f", products.products[1].AvgRating)
	}
}

package services

import (
	"context"
	"fmt"

	"rentedBack/internal/fsm"
	"rentedBack/internal/models"
)

type ReviewService struct {
	Reviews       ReviewStore
	Bookings      BookingStore
	Products      ProductStore
	Notifications NotificationStore
	Notifier      Notifier
}

// CreateReview stores a review and rematerializes the product's aggregate
// rating. When a booking is referenced it must belong to the reviewer, be
// completed, and not have been reviewed before.
func (s *ReviewService) CreateReview(ctx context.Context, userID int, req models.CreateReviewRequest) (models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return models.Review{}, models.ErrInvalidRating
	}
	product, err := s.Products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return models.Review{}, err
	}

	if req.BookingID != nil {
		booking, err := s.Bookings.GetBookingByID(ctx, *req.BookingID)
		if err != nil {
			return models.Review{}, err
		}
		if booking.UserID != userID {
			return models.Review{}, models.ErrNotOwner
		}
		if booking.Status != fsm.BookingCompleted {
			return models.Review{}, models.ErrBookingNotCompleted
		}
		exists, err := s.Reviews.ExistsForBooking(ctx, userID, *req.BookingID)
		if err != nil {
			return models.Review{}, err
		}
		if exists {
			return models.Review{}, models.ErrAlreadyReviewed
		}
	}

	review := models.Review{
		ProductID: req.ProductID,
		UserID:    userID,
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	review, err = s.Reviews.CreateReview(ctx, review)
	if err != nil {
		return models.Review{}, err
	}
	if err := s.Reviews.RecomputeProductRating(ctx, req.ProductID); err != nil {
		return models.Review{}, err
	}

	if product.UserID != 0 && product.UserID != userID {
		notifications := []models.Notification{{
			UserID:      product.UserID,
			Type:        models.NotificationTypeReview,
			Title:       "New review",
			Message:     fmt.Sprintf("Your listing %q received a %d-star review", product.Title, req.Rating),
			RelatedType: "review",
			RelatedID:   review.ID,
		}}
		if err := s.Notifications.CreateBatch(ctx, notifications); err != nil {
			return models.Review{}, err
		}
		if s.Notifier != nil {
			s.Notifier.Push(ctx, notifications[0])
		}
	}
	return review, nil
}

func (s *ReviewService) GetReviewsByProductID(ctx context.Context, productID int) ([]models.Review, error) {
	return s.Reviews.GetReviewsByProductID(ctx, productID)
}

// UpdateReview lets the author or an admin change rating/comment, then
// recomputes the product aggregate.
func (s *ReviewService) UpdateReview(ctx context.Context, userID int, role string, id int, req models.UpdateReviewRequest) (models.Review, error) {
	review, err := s.Reviews.GetReviewByID(ctx, id)
	if err != nil {
		return models.Review{}, err
	}
	if review.UserID != userID && role != "admin" {
		return models.Review{}, models.ErrNotOwner
	}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return models.Review{}, models.ErrInvalidRating
		}
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	if err := s.Reviews.UpdateReview(ctx, review); err != nil {
		return models.Review{}, err
	}
	if err := s.Reviews.RecomputeProductRating(ctx, review.ProductID); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// DeleteReview removes a review (author or admin) and recomputes the product
// aggregate; deleting the last review resets rating and count to zero.
func (s *ReviewService) DeleteReview(ctx context.Context, userID int, role string, id int) error {
	review, err := s.Reviews.GetReviewByID(ctx, id)
	if err != nil {
		return err
	}
	if review.UserID != userID && role != "admin" {
		return models.ErrNotOwner
	}
	if err := s.Reviews.DeleteReview(ctx, id); err != nil {
		return err
	}
	return s.Reviews.RecomputeProductRating(ctx, review.ProductID)
}

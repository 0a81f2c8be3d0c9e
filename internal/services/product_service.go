package services

import (
	"context"

	"rentedBack/internal/fsm"
	"rentedBack/internal/models"
	"rentedBack/internal/repositories"
)

type ProductService struct {
	ProductRepo *repositories.ProductRepository
}

func (s *ProductService) CreateProduct(ctx context.Context, userID int, p models.Product) (models.Product, error) {
	p.UserID = userID
	if p.Availability == "" {
		p.Availability = fsm.Available
	}
	return s.ProductRepo.CreateProduct(ctx, p)
}

func (s *ProductService) GetProductByID(ctx context.Context, id int) (models.Product, error) {
	return s.ProductRepo.GetProductByID(ctx, id)
}

func (s *ProductService) GetFilteredProducts(ctx context.Context, f models.ProductFilterRequest) (models.ProductListResponse, error) {
	return s.ProductRepo.GetFilteredProducts(ctx, f)
}

func (s *ProductService) UpdateProduct(ctx context.Context, userID int, role string, p models.Product) (models.Product, error) {
	existing, err := s.ProductRepo.GetProductByID(ctx, p.ID)
	if err != nil {
		return models.Product{}, err
	}
	if existing.UserID != userID && role != "admin" {
		return models.Product{}, models.ErrNotOwner
	}
	// Rating aggregates are owned by the review workflow.
	p.UserID = existing.UserID
	p.AvgRating = existing.AvgRating
	p.ReviewsCount = existing.ReviewsCount
	if p.Availability == "" {
		p.Availability = existing.Availability
	}
	if err := s.ProductRepo.UpdateProduct(ctx, p); err != nil {
		return models.Product{}, err
	}
	return s.ProductRepo.GetProductByID(ctx, p.ID)
}

func (s *ProductService) DeleteProduct(ctx context.Context, userID int, role string, id int) error {
	existing, err := s.ProductRepo.GetProductByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID && role != "admin" {
		return models.ErrNotOwner
	}
	return s.ProductRepo.DeleteProduct(ctx, id)
}

func (s *ProductService) AddProductImage(ctx context.Context, userID int, role string, id int, img models.ProductImage) error {
	existing, err := s.ProductRepo.GetProductByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID && role != "admin" {
		return models.ErrNotOwner
	}
	return s.ProductRepo.AddProductImage(ctx, id, img)
}

package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"rentedBack/internal/models"
)

type ProductRepository struct {
	DB *sql.DB
}

func (r *ProductRepository) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return models.Product{}, err
	}
	query := `
		INSERT INTO products (title, description, price, category, availability, user_id,
		                      images, min_rental_days, max_rental_days, address, latitude, longitude, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		p.Title, p.Description, p.Price, p.Category, p.Availability, p.UserID,
		images, p.MinRentalDays, p.MaxRentalDays, p.Address, p.Latitude, p.Longitude,
	)
	if err != nil {
		return models.Product{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Product{}, err
	}
	p.ID = int(id)
	return p, nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (models.Product, error) {
	query := `
		SELECT p.id, p.title, p.description, p.price, p.category, p.availability, p.user_id,
		       p.images, p.avg_rating, p.reviews_count, p.min_rental_days, p.max_rental_days,
		       p.address, p.latitude, p.longitude, p.created_at, p.updated_at,
		       u.name, u.surname, u.avatar_path
		FROM products p
		JOIN users u ON p.user_id = u.id
		WHERE p.id = ?
	`
	var p models.Product
	var images []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &p.Availability, &p.UserID,
		&images, &p.AvgRating, &p.ReviewsCount, &p.MinRentalDays, &p.MaxRentalDays,
		&p.Address, &p.Latitude, &p.Longitude, &p.CreatedAt, &p.UpdatedAt,
		&p.User.Name, &p.User.Surname, &p.User.AvatarPath,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, models.ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	p.User.ID = p.UserID
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			p.Images = nil
		}
	}
	return p, nil
}

func (r *ProductRepository) GetFilteredProducts(ctx context.Context, f models.ProductFilterRequest) (models.ProductListResponse, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if f.Category != "" {
		where = append(where, "p.category = ?")
		args = append(args, f.Category)
	}
	if f.PriceFrom > 0 {
		where = append(where, "p.price >= ?")
		args = append(args, f.PriceFrom)
	}
	if f.PriceTo > 0 {
		where = append(where, "p.price <= ?")
		args = append(args, f.PriceTo)
	}
	if f.Availability != "" {
		where = append(where, "p.availability = ?")
		args = append(args, f.Availability)
	}
	if f.Search != "" {
		where = append(where, "(p.title LIKE ? OR p.description LIKE ?)")
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM products p WHERE ` + whereClause
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return models.ProductListResponse{}, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	offset := (f.Page - 1) * f.Limit

	query := `
		SELECT p.id, p.title, p.description, p.price, p.category, p.availability, p.user_id,
		       p.images, p.avg_rating, p.reviews_count, p.min_rental_days, p.max_rental_days,
		       p.address, p.latitude, p.longitude, p.created_at, p.updated_at,
		       u.name, u.surname, u.avatar_path
		FROM products p
		JOIN users u ON p.user_id = u.id
		WHERE ` + whereClause + `
		ORDER BY p.created_at DESC
		LIMIT ? OFFSET ?
	`
	args = append(args, f.Limit, offset)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return models.ProductListResponse{}, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		var images []byte
		err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &p.Availability, &p.UserID,
			&images, &p.AvgRating, &p.ReviewsCount, &p.MinRentalDays, &p.MaxRentalDays,
			&p.Address, &p.Latitude, &p.Longitude, &p.CreatedAt, &p.UpdatedAt,
			&p.User.Name, &p.User.Surname, &p.User.AvatarPath,
		)
		if err != nil {
			return models.ProductListResponse{}, err
		}
		p.User.ID = p.UserID
		if len(images) > 0 {
			if err := json.Unmarshal(images, &p.Images); err != nil {
				p.Images = nil
			}
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return models.ProductListResponse{}, err
	}

	return models.ProductListResponse{
		Products: products,
		Total:    total,
		Page:     f.Page,
		Limit:    f.Limit,
	}, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, p models.Product) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}
	query := `
		UPDATE products
		SET title = ?, description = ?, price = ?, category = ?, availability = ?,
		    images = ?, min_rental_days = ?, max_rental_days = ?, address = ?,
		    latitude = ?, longitude = ?, updated_at = NOW()
		WHERE id = ?
	`
	result, err := r.DB.ExecContext(ctx, query,
		p.Title, p.Description, p.Price, p.Category, p.Availability,
		images, p.MinRentalDays, p.MaxRentalDays, p.Address, p.Latitude, p.Longitude,
		p.ID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) SetAvailability(ctx context.Context, id int, availability string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE products SET availability = ?, updated_at = NOW() WHERE id = ?`,
		availability, id,
	)
	return err
}

func (r *ProductRepository) AddProductImage(ctx context.Context, id int, img models.ProductImage) error {
	p, err := r.GetProductByID(ctx, id)
	if err != nil {
		return err
	}
	p.Images = append(p.Images, img)
	images, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		`UPDATE products SET images = ?, updated_at = NOW() WHERE id = ?`,
		images, id,
	)
	return err
}

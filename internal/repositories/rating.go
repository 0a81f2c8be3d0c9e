package repositories

import (
	"context"
	"database/sql"
)

// RecomputeProductRating rematerializes the product's aggregate rating and
// review count from the reviews table. Called after every review mutation so
// listing queries never compute the mean lazily. When no reviews remain both
// values reset to zero.
func (r *ReviewRepository) RecomputeProductRating(ctx context.Context, productID int) error {
	var avg sql.NullFloat64
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT AVG(rating), COUNT(*) FROM reviews WHERE product_id = ?`,
		productID,
	).Scan(&avg, &count)
	if err != nil {
		return err
	}

	rating := 0.0
	if avg.Valid {
		rating = avg.Float64
	}
	_, err = r.DB.ExecContext(ctx,
		`UPDATE products SET avg_rating = ?, reviews_count = ?, updated_at = NOW() WHERE id = ?`,
		rating, count, productID,
	)
	return err
}

package repositories

import (
	"context"
	"database/sql"
	"errors"

	"rentedBack/internal/models"
)

type CartRepository struct {
	DB *sql.DB
}

// EnsureCart returns the id of the user's cart, creating the row on first
// use. One cart per user.
func (r *CartRepository) EnsureCart(ctx context.Context, userID int) (int, error) {
	var id int
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id = ?`, userID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO carts (user_id, created_at, updated_at) VALUES (?, NOW(), NOW())`, userID)
	if err != nil {
		return 0, err
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(newID), nil
}

func (r *CartRepository) GetCartByUser(ctx context.Context, userID int) (models.Cart, error) {
	query := `
		SELECT c.id, c.user_id, c.promo_code, c.discount_percent, c.updated_at
		FROM carts c
		WHERE c.user_id = ?
	`
	var cart models.Cart
	var promo sql.NullString
	var percent sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&cart.ID, &cart.UserID, &promo, &percent, &cart.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		// Lazily created on first add; an absent row is just an empty cart.
		return models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return models.Cart{}, err
	}
	if promo.Valid {
		cart.PromoCode = &promo.String
		cart.DiscountPercent = percent.Float64
	}

	itemsQuery := `
		SELECT ci.product_id, p.title, ci.price, ci.quantity, ci.duration
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.cart_id = ?
		ORDER BY ci.id
	`
	rows, err := r.DB.QueryContext(ctx, itemsQuery, cart.ID)
	if err != nil {
		return models.Cart{}, err
	}
	defer rows.Close()

	cart.Items = []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ProductID, &item.ProductTitle, &item.Price, &item.Quantity, &item.Duration); err != nil {
			return models.Cart{}, err
		}
		cart.Items = append(cart.Items, item)
	}
	return cart, rows.Err()
}

// UpsertItem stores a cart entry, overwriting quantity, duration and price
// snapshot when the product is already present.
func (r *CartRepository) UpsertItem(ctx context.Context, cartID int, item models.CartItem) error {
	query := `
		INSERT INTO cart_items (cart_id, product_id, price, quantity, duration)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE price = VALUES(price), quantity = VALUES(quantity), duration = VALUES(duration)
	`
	if _, err := r.DB.ExecContext(ctx, query, cartID, item.ProductID, item.Price, item.Quantity, item.Duration); err != nil {
		return err
	}
	return r.touch(ctx, cartID)
}

func (r *CartRepository) UpdateItem(ctx context.Context, cartID, productID int, quantity, duration *int) error {
	set := ""
	args := []interface{}{}
	if quantity != nil {
		set = "quantity = ?"
		args = append(args, *quantity)
	}
	if duration != nil {
		if set != "" {
			set += ", "
		}
		set += "duration = ?"
		args = append(args, *duration)
	}
	if set == "" {
		return nil
	}
	args = append(args, cartID, productID)
	result, err := r.DB.ExecContext(ctx,
		`UPDATE cart_items SET `+set+` WHERE cart_id = ? AND product_id = ?`, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrCartItemNotFound
	}
	return r.touch(ctx, cartID)
}

func (r *CartRepository) RemoveItem(ctx context.Context, cartID, productID int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrCartItemNotFound
	}
	return r.touch(ctx, cartID)
}

func (r *CartRepository) ReplaceItems(ctx context.Context, cartID int, items []models.CartItem) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return err
	}
	for _, item := range items {
		query := `
			INSERT INTO cart_items (cart_id, product_id, price, quantity, duration)
			VALUES (?, ?, ?, ?, ?)
		`
		if _, err := r.DB.ExecContext(ctx, query, cartID, item.ProductID, item.Price, item.Quantity, item.Duration); err != nil {
			return err
		}
	}
	return r.touch(ctx, cartID)
}

func (r *CartRepository) Clear(ctx context.Context, cartID int) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		`UPDATE carts SET promo_code = NULL, discount_percent = 0, updated_at = NOW() WHERE id = ?`, cartID)
	return err
}

func (r *CartRepository) SetPromo(ctx context.Context, cartID int, code string, percent float64) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE carts SET promo_code = ?, discount_percent = ?, updated_at = NOW() WHERE id = ?`,
		code, percent, cartID)
	return err
}

func (r *CartRepository) GetPromoByCode(ctx context.Context, code string) (models.PromoCode, error) {
	query := `SELECT id, code, percent, active FROM promo_codes WHERE code = ?`
	var promo models.PromoCode
	err := r.DB.QueryRowContext(ctx, query, code).Scan(&promo.ID, &promo.Code, &promo.Percent, &promo.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PromoCode{}, models.ErrInvalidPromoCode
	}
	if err != nil {
		return models.PromoCode{}, err
	}
	if !promo.Active {
		return models.PromoCode{}, models.ErrInvalidPromoCode
	}
	return promo, nil
}

func (r *CartRepository) touch(ctx context.Context, cartID int) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = ?`, cartID)
	return err
}

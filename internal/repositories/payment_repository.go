package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentedBack/internal/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

// CreatePayment inserts the payment row and its booking links. The links are
// written after the payment insert without a transaction; a failure in
// between leaves the payment committed (see the checkout workflow notes).
func (r *PaymentRepository) CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	query := `
		INSERT INTO payments (user_id, amount, payment_method, status, transaction_id, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		p.UserID, p.Amount, p.PaymentMethod, p.Status, p.TransactionID,
	)
	if err != nil {
		return models.Payment{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Payment{}, err
	}
	p.ID = int(id)

	for _, bookingID := range p.BookingIDs {
		_, err := r.DB.ExecContext(ctx,
			`INSERT INTO payment_bookings (payment_id, booking_id) VALUES (?, ?)`,
			p.ID, bookingID,
		)
		if err != nil {
			return models.Payment{}, err
		}
	}
	p.CreatedAt = time.Now()
	return p, nil
}

func (r *PaymentRepository) GetPaymentByID(ctx context.Context, id int) (models.Payment, error) {
	query := `
		SELECT id, user_id, amount, payment_method, status, transaction_id,
		       refund_reason, refund_date, created_at
		FROM payments
		WHERE id = ?
	`
	var p models.Payment
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.Amount, &p.PaymentMethod, &p.Status, &p.TransactionID,
		&p.RefundReason, &p.RefundDate, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, models.ErrPaymentNotFound
	}
	if err != nil {
		return models.Payment{}, err
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT booking_id FROM payment_bookings WHERE payment_id = ?`, p.ID)
	if err != nil {
		return models.Payment{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var bookingID int
		if err := rows.Scan(&bookingID); err != nil {
			return models.Payment{}, err
		}
		p.BookingIDs = append(p.BookingIDs, bookingID)
	}
	return p, rows.Err()
}

func (r *PaymentRepository) MarkRefunded(ctx context.Context, id int, reason string, at time.Time) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE payments SET status = ?, refund_reason = ?, refund_date = ? WHERE id = ?`,
		"refunded", reason, at, id,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrPaymentNotFound
	}
	return nil
}

// GetHistoryByUser returns the user's payments, newest first, with the
// bookings each payment covered nested in.
func (r *PaymentRepository) GetHistoryByUser(ctx context.Context, userID int) ([]models.Payment, error) {
	query := `
		SELECT id, user_id, amount, payment_method, status, transaction_id,
		       refund_reason, refund_date, created_at
		FROM payments
		WHERE user_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Amount, &p.PaymentMethod, &p.Status, &p.TransactionID,
			&p.RefundReason, &p.RefundDate, &p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	bookingQuery := `
		SELECT b.id, b.product_id, b.user_id, b.start_date, b.end_date, b.quantity, b.total_price,
		       b.status, b.payment_status, b.payment_method, b.created_at, b.updated_at,
		       p.title, p.user_id
		FROM payment_bookings pb
		JOIN bookings b ON pb.booking_id = b.id
		JOIN products p ON b.product_id = p.id
		WHERE pb.payment_id = ?
	`
	for i := range payments {
		bRows, err := r.DB.QueryContext(ctx, bookingQuery, payments[i].ID)
		if err != nil {
			return nil, err
		}
		for bRows.Next() {
			var b models.Booking
			err := bRows.Scan(
				&b.ID, &b.ProductID, &b.UserID, &b.StartDate, &b.EndDate, &b.Quantity, &b.TotalPrice,
				&b.Status, &b.PaymentStatus, &b.PaymentMethod, &b.CreatedAt, &b.UpdatedAt,
				&b.ProductTitle, &b.ProductOwnerID,
			)
			if err != nil {
				bRows.Close()
				return nil, err
			}
			payments[i].Bookings = append(payments[i].Bookings, b)
			payments[i].BookingIDs = append(payments[i].BookingIDs, b.ID)
		}
		if err := bRows.Err(); err != nil {
			bRows.Close()
			return nil, err
		}
		bRows.Close()
	}
	return payments, nil
}

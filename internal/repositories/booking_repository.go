package repositories

import (
	"context"
	"database/sql"
	"errors"

	"rentedBack/internal/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r *BookingRepository) CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	var areaName interface{}
	var areaLat, areaLon interface{}
	if b.MeetingArea != nil {
		areaName = b.MeetingArea.Name
		areaLat = b.MeetingArea.Latitude
		areaLon = b.MeetingArea.Longitude
	}
	query := `
		INSERT INTO bookings (product_id, user_id, start_date, end_date, quantity, total_price,
		                      status, payment_status, payment_method,
		                      meeting_area_name, meeting_area_lat, meeting_area_lon, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		b.ProductID, b.UserID, b.StartDate, b.EndDate, b.Quantity, b.TotalPrice,
		b.Status, b.PaymentStatus, b.PaymentMethod,
		areaName, areaLat, areaLon,
	)
	if err != nil {
		return models.Booking{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Booking{}, err
	}
	b.ID = int(id)
	return b, nil
}

func (r *BookingRepository) GetBookingByID(ctx context.Context, id int) (models.Booking, error) {
	query := `
		SELECT b.id, b.product_id, b.user_id, b.start_date, b.end_date, b.quantity, b.total_price,
		       b.status, b.payment_status, b.payment_method,
		       b.meeting_area_name, b.meeting_area_lat, b.meeting_area_lon,
		       b.created_at, b.updated_at,
		       p.title, p.user_id
		FROM bookings b
		JOIN products p ON b.product_id = p.id
		WHERE b.id = ?
	`
	var b models.Booking
	var areaName sql.NullString
	var areaLat, areaLon sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.ProductID, &b.UserID, &b.StartDate, &b.EndDate, &b.Quantity, &b.TotalPrice,
		&b.Status, &b.PaymentStatus, &b.PaymentMethod,
		&areaName, &areaLat, &areaLon,
		&b.CreatedAt, &b.UpdatedAt,
		&b.ProductTitle, &b.ProductOwnerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, models.ErrBookingNotFound
	}
	if err != nil {
		return models.Booking{}, err
	}
	if areaName.Valid {
		b.MeetingArea = &models.MeetingArea{
			Name:      areaName.String,
			Latitude:  areaLat.Float64,
			Longitude: areaLon.Float64,
		}
	}
	return b, nil
}

func (r *BookingRepository) GetBookingsByUser(ctx context.Context, userID int) ([]models.Booking, error) {
	query := `
		SELECT b.id, b.product_id, b.user_id, b.start_date, b.end_date, b.quantity, b.total_price,
		       b.status, b.payment_status, b.payment_method, b.created_at, b.updated_at,
		       p.title, p.user_id
		FROM bookings b
		JOIN products p ON b.product_id = p.id
		WHERE b.user_id = ?
		ORDER BY b.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		err := rows.Scan(
			&b.ID, &b.ProductID, &b.UserID, &b.StartDate, &b.EndDate, &b.Quantity, &b.TotalPrice,
			&b.Status, &b.PaymentStatus, &b.PaymentMethod, &b.CreatedAt, &b.UpdatedAt,
			&b.ProductTitle, &b.ProductOwnerID,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// UpdateStatuses persists the booking status pair. Each call is an
// independent write; checkout and refund invoke it once per booking with no
// surrounding transaction.
func (r *BookingRepository) UpdateStatuses(ctx context.Context, id int, status, paymentStatus string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET status = ?, payment_status = ?, updated_at = NOW() WHERE id = ?`,
		status, paymentStatus, id,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = NOW() WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

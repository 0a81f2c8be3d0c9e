package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"rentedBack/internal/models"
)

type NotificationRepository struct {
	DB *sql.DB
}

// CreateBatch inserts all notifications in a single statement. Workflows
// queue up their fan-out and commit it in one write.
func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO notifications (user_id, type, title, message, related_type, related_id, ` + "`read`" + `, created_at) VALUES `)
	args := make([]interface{}, 0, len(notifications)*6)
	for i, n := range notifications {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, FALSE, NOW())")
		args = append(args, n.UserID, n.Type, n.Title, n.Message, n.RelatedType, n.RelatedID)
	}
	_, err := r.DB.ExecContext(ctx, sb.String(), args...)
	return err
}

// ListByUser returns the recipient's newest 50 notifications.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, related_type, related_id, ` + "`read`" + `, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT 50
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message,
			&n.RelatedType, &n.RelatedID, &n.Read, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) GetByID(ctx context.Context, id int) (models.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, related_type, related_id, ` + "`read`" + `, created_at
		FROM notifications
		WHERE id = ?
	`
	var n models.Notification
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message,
		&n.RelatedType, &n.RelatedID, &n.Read, &n.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Notification{}, models.ErrNotificationNotFound
	}
	if err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET `+"`read`"+` = TRUE WHERE id = ?`, id)
	return err
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET `+"`read`"+` = TRUE WHERE user_id = ?`, userID)
	return err
}

func (r *NotificationRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM notifications WHERE id = ?`, id)
	return err
}

func (r *NotificationRepository) RegisterDeviceToken(ctx context.Context, t models.DeviceToken) error {
	query := `
		INSERT INTO device_tokens (user_id, token, platform)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE user_id = VALUES(user_id), platform = VALUES(platform)
	`
	_, err := r.DB.ExecContext(ctx, query, t.UserID, t.Token, t.Platform)
	return err
}

func (r *NotificationRepository) DeviceTokensByUser(ctx context.Context, userID int) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT token FROM device_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := []string{}
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

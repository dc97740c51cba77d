package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/incampus/backend/internal/app/models"
	"github.com/incampus/backend/internal/pkg/apperrors"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification and fills in its generated fields
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO notifications (recipient_id, sender_id, type, post_id, comment_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		n.RecipientID, n.SenderID, n.Type, n.PostID, n.CommentID,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

// GetByID retrieves a notification by id
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	var n models.Notification
	err := r.db.QueryRow(ctx,
		`SELECT id, recipient_id, sender_id, type, post_id, comment_id, is_read, created_at
		 FROM notifications WHERE id = $1`, id,
	).Scan(&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.PostID, &n.CommentID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("error retrieving notification: %w", err)
	}
	return &n, nil
}

// List returns a page of the user's notifications, newest first, with sender
// summaries joined on.
func (r *NotificationRepository) List(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	builder := squirrel.Select(
		"n.id", "n.recipient_id", "n.sender_id", "n.type", "n.post_id", "n.comment_id", "n.is_read", "n.created_at",
		"u.id", "u.name", "u.email", "u.university_id", "u.role", "u.avatar_url",
	).
		From("notifications n").
		Join("users u ON u.id = n.sender_id").
		Where("n.recipient_id = ?", recipientID).
		OrderBy("n.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	if unreadOnly {
		builder = builder.Where("n.is_read = FALSE")
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		var sender models.User
		err := rows.Scan(
			&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.PostID, &n.CommentID, &n.IsRead, &n.CreatedAt,
			&sender.ID, &sender.Name, &sender.Email, &sender.UniversityID, &sender.Role, &sender.AvatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		n.Sender = &sender
		notifications = append(notifications, &n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return notifications, nil
}

// Count returns the user's notification count, optionally unread only
func (r *NotificationRepository) Count(ctx context.Context, recipientID int64, unreadOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, recipientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting notifications: %w", err)
	}
	return count, nil
}

// MarkRead flags the given notifications as read, touching only rows that
// belong to the recipient. Returns the number of rows updated.
func (r *NotificationRepository) MarkRead(ctx context.Context, recipientID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND id = ANY($2)`,
		recipientID, ids)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MarkAllRead flags every unread notification of the recipient as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE`,
		recipientID)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes a notification
func (r *NotificationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

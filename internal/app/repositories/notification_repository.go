package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaanyildiz/assignflow/internal/app/models"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Insert creates a notification row inside the given transaction. Callers
// run it in the same transaction as the transition it announces.
func (r *NotificationRepository) Insert(ctx context.Context, tx pgx.Tx, n *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, assignment_id, message, type, read, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query,
		n.UserID, n.AssignmentID, n.Message, n.Type, time.Now(),
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// List retrieves a user's notifications, newest first, optionally unread only.
func (r *NotificationRepository) List(ctx context.Context, userID int64, unreadOnly bool, offset uint64, limit int) ([]*models.Notification, int64, error) {
	where := squirrel.Eq{"user_id": userID}

	countBuilder := r.sb.Select("COUNT(*)").From("notifications").Where(where)
	listBuilder := r.sb.
		Select("id", "user_id", "assignment_id", "message", "type", "read", "created_at").
		From("notifications").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Offset(offset).
		Limit(uint64(limit))

	if unreadOnly {
		countBuilder = countBuilder.Where(squirrel.Eq{"read": false})
		listBuilder = listBuilder.Where(squirrel.Eq{"read": false})
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build notification count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting notifications: %w", err)
	}

	listSQL, listArgs, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build notification list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.AssignmentID, &n.Message, &n.Type, &n.Read, &n.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// MarkRead flips read=true for the notification if it belongs to the user.
// Returns whether a row was updated; a foreign or missing notification is
// not an error.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return false, fmt.Errorf("error marking notification read: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// MarkAllRead flips read=true for all of a user's notifications
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`,
		userID)
	if err != nil {
		return fmt.Errorf("error marking notifications read: %w", err)
	}
	return nil
}

// UnreadCount returns the user's unread notification count
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaanyildiz/assignflow/internal/app/models"
	"github.com/kaanyildiz/assignflow/internal/pkg/apperrors"
)

// HistoryRepository handles the append-only assignment history log.
// There is deliberately no update or delete: entries are immutable.
type HistoryRepository struct {
	db *pgxpool.Pool
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{
		db: db,
	}
}

// Insert appends one history entry inside the given transaction
func (r *HistoryRepository) Insert(ctx context.Context, tx pgx.Tx, h *models.AssignmentHistory) error {
	query := `
		INSERT INTO assignment_history (assignment_id, reviewer_id, action, remark, signature, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query,
		h.AssignmentID, h.ReviewerID, h.Action, h.Remark, h.Signature, time.Now(),
	).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		return fmt.Errorf("error appending history entry: %w", err)
	}

	return nil
}

// ListByAssignment retrieves the ordered history of an assignment, joined
// with each acting reviewer's name.
func (r *HistoryRepository) ListByAssignment(ctx context.Context, assignmentID int64) ([]*models.AssignmentHistory, error) {
	query := `
		SELECT h.id, h.assignment_id, h.reviewer_id, h.action, h.remark, h.created_at,
		       u.id, u.first_name, u.last_name, u.role
		FROM assignment_history h
		JOIN users u ON u.id = h.reviewer_id
		WHERE h.assignment_id = $1
		ORDER BY h.created_at ASC, h.id ASC
	`

	rows, err := r.db.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing history: %w", err)
	}
	defer rows.Close()

	var entries []*models.AssignmentHistory
	for rows.Next() {
		var h models.AssignmentHistory
		var reviewer models.User
		err := rows.Scan(
			&h.ID, &h.AssignmentID, &h.ReviewerID, &h.Action, &h.Remark, &h.CreatedAt,
			&reviewer.ID, &reviewer.FirstName, &reviewer.LastName, &reviewer.Role,
		)
		if err != nil {
			return nil, err
		}
		h.Reviewer = &reviewer
		entries = append(entries, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// LatestByAction retrieves the most recent entry of the given action for an
// assignment, or ErrResourceNotFound when none exists. Resubmission uses it to
// recover the reviewer who issued the last rejection.
func (r *HistoryRepository) LatestByAction(ctx context.Context, assignmentID int64, action models.HistoryAction) (*models.AssignmentHistory, error) {
	query := `
		SELECT id, assignment_id, reviewer_id, action, remark, created_at
		FROM assignment_history
		WHERE assignment_id = $1 AND action = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var h models.AssignmentHistory
	err := r.db.QueryRow(ctx, query, assignmentID, action).Scan(
		&h.ID, &h.AssignmentID, &h.ReviewerID, &h.Action, &h.Remark, &h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error loading latest history entry: %w", err)
	}
	return &h, nil
}

// HasActor reports whether the given user appears as an actor anywhere in
// the assignment's history. Past reviewers keep read access.
func (r *HistoryRepository) HasActor(ctx context.Context, assignmentID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM assignment_history WHERE assignment_id = $1 AND reviewer_id = $2)`,
		assignmentID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking history actor: %w", err)
	}
	return exists, nil
}

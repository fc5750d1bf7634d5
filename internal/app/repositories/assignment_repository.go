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

// AssignmentRepository handles database operations for assignments
type AssignmentRepository struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{
		db: db,
	}
}

const assignmentColumns = `id, title, description, category, status, file_path, student_id, reviewer_id, created_at, updated_at, submitted_at`

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	var a models.Assignment
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.Category,
		&a.Status,
		&a.FilePath,
		&a.StudentID,
		&a.ReviewerID,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	if !a.Status.Valid() {
		return nil, fmt.Errorf("unknown status %q for assignment %d", a.Status, a.ID)
	}
	return &a, nil
}

// Create inserts a new draft assignment
func (r *AssignmentRepository) Create(ctx context.Context, a *models.Assignment) error {
	query := `
		INSERT INTO assignments (title, description, category, status, file_path, student_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		a.Title, a.Description, a.Category, a.Status, a.FilePath, a.StudentID, time.Now(),
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating assignment: %w", err)
	}

	return nil
}

// GetByID retrieves an assignment by ID
func (r *AssignmentRepository) GetByID(ctx context.Context, id int64) (*models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1`

	a, err := scanAssignment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving assignment: %w", err)
	}

	return a, nil
}

// GetByIDForUpdate retrieves an assignment inside a transaction with a row
// lock, so concurrent transitions on the same assignment serialize.
func (r *AssignmentRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1 FOR UPDATE`

	a, err := scanAssignment(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving assignment for update: %w", err)
	}

	return a, nil
}

// UpdateDraft persists the editable fields of a draft
func (r *AssignmentRepository) UpdateDraft(ctx context.Context, a *models.Assignment) error {
	query := `
		UPDATE assignments
		SET title = $1, description = $2, category = $3, file_path = $4, updated_at = $5
		WHERE id = $6 AND status = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		a.Title, a.Description, a.Category, a.FilePath, time.Now(), a.ID, models.StatusDraft)
	if err != nil {
		return fmt.Errorf("error updating draft: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}

	return nil
}

// Delete removes a draft assignment
func (r *AssignmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting assignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// ApplyTransition persists the mutable transition fields (status, reviewer,
// submission time, description, file path) inside the given transaction.
func (r *AssignmentRepository) ApplyTransition(ctx context.Context, tx pgx.Tx, a *models.Assignment) error {
	query := `
		UPDATE assignments
		SET status = $1, reviewer_id = $2, submitted_at = $3, description = $4, file_path = $5, updated_at = $6
		WHERE id = $7
	`

	cmdTag, err := tx.Exec(ctx, query,
		a.Status, a.ReviewerID, a.SubmittedAt, a.Description, a.FilePath, time.Now(), a.ID)
	if err != nil {
		return fmt.Errorf("error applying transition: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}

	return nil
}

// ListByStudent retrieves all assignments owned by a student
func (r *AssignmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE student_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

// ListPendingByReviewer retrieves assignments currently awaiting the given
// reviewer, joined with the owning student's name for the dashboard.
func (r *AssignmentRepository) ListPendingByReviewer(ctx context.Context, reviewerID int64) ([]*models.Assignment, error) {
	query := `
		SELECT a.id, a.title, a.description, a.category, a.status, a.file_path,
		       a.student_id, a.reviewer_id, a.created_at, a.updated_at, a.submitted_at,
		       u.id, u.email, u.first_name, u.last_name, u.role
		FROM assignments a
		JOIN users u ON u.id = a.student_id
		WHERE a.reviewer_id = $1 AND a.status IN ($2, $3)
		ORDER BY a.submitted_at ASC
	`

	rows, err := r.db.Query(ctx, query, reviewerID, models.StatusSubmitted, models.StatusForwarded)
	if err != nil {
		return nil, fmt.Errorf("error listing pending assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		var a models.Assignment
		var student models.User
		err := rows.Scan(
			&a.ID, &a.Title, &a.Description, &a.Category, &a.Status, &a.FilePath,
			&a.StudentID, &a.ReviewerID, &a.CreatedAt, &a.UpdatedAt, &a.SubmittedAt,
			&student.ID, &student.Email, &student.FirstName, &student.LastName, &student.Role,
		)
		if err != nil {
			return nil, err
		}
		a.Student = &student
		assignments = append(assignments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func collectAssignments(rows pgx.Rows) ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

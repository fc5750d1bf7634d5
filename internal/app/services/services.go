package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/kaanyildiz/assignflow/internal/app/models"
	"github.com/kaanyildiz/assignflow/internal/db"
)

// The services depend on narrow store interfaces rather than the concrete
// repository types so they can be exercised against in-memory stubs. The
// *repositories.X types satisfy them.

type assignmentStore interface {
	Create(ctx context.Context, a *models.Assignment) error
	GetByID(ctx context.Context, id int64) (*models.Assignment, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*models.Assignment, error)
	UpdateDraft(ctx context.Context, a *models.Assignment) error
	Delete(ctx context.Context, id int64) error
	ApplyTransition(ctx context.Context, tx pgx.Tx, a *models.Assignment) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Assignment, error)
	ListPendingByReviewer(ctx context.Context, reviewerID int64) ([]*models.Assignment, error)
}

type userStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ListReviewersByDepartment(ctx context.Context, departmentID, excludeID int64) ([]*models.User, error)
}

type historyStore interface {
	Insert(ctx context.Context, tx pgx.Tx, h *models.AssignmentHistory) error
	ListByAssignment(ctx context.Context, assignmentID int64) ([]*models.AssignmentHistory, error)
	LatestByAction(ctx context.Context, assignmentID int64, action models.HistoryAction) (*models.AssignmentHistory, error)
	HasActor(ctx context.Context, assignmentID, userID int64) (bool, error)
}

type notificationStore interface {
	Insert(ctx context.Context, tx pgx.Tx, n *models.Notification) error
}

// txManager runs a function within a database transaction. Satisfied by
// *db.PostgresDB; tests use a pass-through that hands the function a nil tx.
type txManager interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

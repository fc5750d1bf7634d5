package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kaanyildiz/assignflow/internal/app/models"
	"github.com/kaanyildiz/assignflow/internal/db"
	"github.com/kaanyildiz/assignflow/internal/pkg/apperrors"
)

// stubAssignments is an in-memory assignment table. GetByID hands out copies
// so a test can tell mutated-but-not-persisted apart from applied transitions.
type stubAssignments struct {
	byID           map[int64]*models.Assignment
	transitions    []*models.Assignment
	failTransition error
}

func newStubAssignments(assignments ...*models.Assignment) *stubAssignments {
	s := &stubAssignments{byID: make(map[int64]*models.Assignment)}
	for _, a := range assignments {
		s.byID[a.ID] = a
	}
	return s
}

func (s *stubAssignments) Create(_ context.Context, a *models.Assignment) error {
	a.ID = int64(len(s.byID) + 1)
	a.CreatedAt = time.Now()
	s.byID[a.ID] = a
	return nil
}

func (s *stubAssignments) GetByID(_ context.Context, id int64) (*models.Assignment, error) {
	a, ok := s.byID[id]
	if !ok {
		return nil, apperrors.ErrAssignmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *stubAssignments) GetByIDForUpdate(ctx context.Context, _ pgx.Tx, id int64) (*models.Assignment, error) {
	return s.GetByID(ctx, id)
}

func (s *stubAssignments) UpdateDraft(_ context.Context, a *models.Assignment) error {
	s.byID[a.ID] = a
	return nil
}

func (s *stubAssignments) Delete(_ context.Context, id int64) error {
	delete(s.byID, id)
	return nil
}

func (s *stubAssignments) ApplyTransition(_ context.Context, _ pgx.Tx, a *models.Assignment) error {
	if s.failTransition != nil {
		return s.failTransition
	}
	s.byID[a.ID] = a
	s.transitions = append(s.transitions, a)
	return nil
}

func (s *stubAssignments) ListByStudent(_ context.Context, studentID int64) ([]*models.Assignment, error) {
	var out []*models.Assignment
	for _, a := range s.byID {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAssignments) ListPendingByReviewer(_ context.Context, reviewerID int64) ([]*models.Assignment, error) {
	var out []*models.Assignment
	for _, a := range s.byID {
		if a.AssignedTo(reviewerID) && a.Status.UnderReview() {
			out = append(out, a)
		}
	}
	return out, nil
}

// stubUsers is an in-memory user table.
type stubUsers struct {
	byID map[int64]*models.User
}

func newStubUsers(users ...*models.User) *stubUsers {
	s := &stubUsers{byID: make(map[int64]*models.User)}
	for _, u := range users {
		s.byID[u.ID] = u
	}
	return s
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUsers) ListReviewersByDepartment(_ context.Context, departmentID, excludeID int64) ([]*models.User, error) {
	var out []*models.User
	for _, u := range s.byID {
		if u.ID == excludeID || !u.Role.IsReviewer() || !u.IsActive {
			continue
		}
		if u.DepartmentID != nil && *u.DepartmentID == departmentID {
			out = append(out, u)
		}
	}
	return out, nil
}

// stubHistory is an in-memory append-only transition log.
type stubHistory struct {
	entries []*models.AssignmentHistory
}

func (s *stubHistory) Insert(_ context.Context, _ pgx.Tx, h *models.AssignmentHistory) error {
	h.ID = int64(len(s.entries) + 1)
	h.CreatedAt = time.Now()
	s.entries = append(s.entries, h)
	return nil
}

func (s *stubHistory) ListByAssignment(_ context.Context, assignmentID int64) ([]*models.AssignmentHistory, error) {
	var out []*models.AssignmentHistory
	for _, h := range s.entries {
		if h.AssignmentID == assignmentID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *stubHistory) LatestByAction(_ context.Context, assignmentID int64, action models.HistoryAction) (*models.AssignmentHistory, error) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].AssignmentID == assignmentID && s.entries[i].Action == action {
			return s.entries[i], nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (s *stubHistory) HasActor(_ context.Context, assignmentID, userID int64) (bool, error) {
	for _, h := range s.entries {
		if h.AssignmentID == assignmentID && h.ReviewerID == userID {
			return true, nil
		}
	}
	return false, nil
}

// stubNotifications records inserted notification rows.
type stubNotifications struct {
	rows []*models.Notification
}

func (s *stubNotifications) Insert(_ context.Context, _ pgx.Tx, n *models.Notification) error {
	n.ID = int64(len(s.rows) + 1)
	s.rows = append(s.rows, n)
	return nil
}

// passthroughTx runs the callback outside any real transaction.
type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

// stubFiles fakes file storage, recording saved and deleted paths.
type stubFiles struct {
	saved   []string
	deleted []string
	saveErr error
}

func (s *stubFiles) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return s.SaveFileWithPath(fileHeader, "files")
}

func (s *stubFiles) SaveFileWithPath(_ *multipart.FileHeader, path string) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	p := "/uploads/" + path + "/file-" + strconv.Itoa(len(s.saved)+1) + ".pdf"
	s.saved = append(s.saved, p)
	return p, nil
}

func (s *stubFiles) DeleteFile(filePath string) error {
	s.deleted = append(s.deleted, filePath)
	return nil
}

func (s *stubFiles) GetFullPath(fileURL string) string {
	return fileURL
}

// stubMailer records outbound mail instead of sending it.
type stubMailer struct {
	approvalCodes     []string
	submissionNotices []string
	rejectionNotices  []string
	failApprovalCode  error
	failSubmission    error
}

func (s *stubMailer) SendApprovalCode(_, _, _, code string, _ time.Duration) error {
	if s.failApprovalCode != nil {
		return s.failApprovalCode
	}
	s.approvalCodes = append(s.approvalCodes, code)
	return nil
}

func (s *stubMailer) SendSubmissionNotice(toEmail, _, _, _ string) error {
	if s.failSubmission != nil {
		return s.failSubmission
	}
	s.submissionNotices = append(s.submissionNotices, toEmail)
	return nil
}

func (s *stubMailer) SendRejectionNotice(toEmail, _, _, _ string) error {
	s.rejectionNotices = append(s.rejectionNotices, toEmail)
	return nil
}

var errStubFailure = errors.New("stub failure")

// fileHeader returns a header the stub storage accepts without opening.
func fileHeader(t *testing.T) *multipart.FileHeader {
	t.Helper()
	return &multipart.FileHeader{Filename: "revised.pdf", Size: 128}
}

func deptID(id int64) *int64 { return &id }

func testStudent(id int64, departmentID int64) *models.User {
	return &models.User{
		ID:           id,
		Email:        "student" + strconv.FormatInt(id, 10) + "@school.edu.tr",
		FirstName:    "Student",
		LastName:     strconv.FormatInt(id, 10),
		Role:         models.RoleStudent,
		DepartmentID: deptID(departmentID),
		IsActive:     true,
	}
}

func testReviewer(id int64, departmentID int64, role models.RoleType) *models.User {
	return &models.User{
		ID:           id,
		Email:        "reviewer" + strconv.FormatInt(id, 10) + "@school.edu.tr",
		FirstName:    "Reviewer",
		LastName:     strconv.FormatInt(id, 10),
		Role:         role,
		DepartmentID: deptID(departmentID),
		IsActive:     true,
	}
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaanyildiz/assignflow/internal/app/models"
	"github.com/kaanyildiz/assignflow/internal/app/models/dto"
	"github.com/kaanyildiz/assignflow/internal/pkg/apperrors"
)

type lifecycleFixture struct {
	assignments   *stubAssignments
	users         *stubUsers
	history       *stubHistory
	notifications *stubNotifications
	files         *stubFiles
	mailer        *stubMailer
	svc           AssignmentService
}

func newLifecycleFixture(assignments *stubAssignments, users *stubUsers) *lifecycleFixture {
	f := &lifecycleFixture{
		assignments:   assignments,
		users:         users,
		history:       &stubHistory{},
		notifications: &stubNotifications{},
		files:         &stubFiles{},
		mailer:        &stubMailer{},
	}
	f.svc = NewAssignmentService(
		f.assignments, f.history, f.notifications, f.users,
		passthroughTx{}, f.files, f.mailer,
	)
	return f
}

func draftAssignment(id, studentID int64) *models.Assignment {
	return &models.Assignment{
		ID:        id,
		Title:     "Graph Coloring Survey",
		Category:  models.CategoryThesis,
		Status:    models.StatusDraft,
		FilePath:  "/uploads/assignments/survey.pdf",
		StudentID: studentID,
	}
}

func submittedAssignment(id, studentID, reviewerID int64) *models.Assignment {
	a := draftAssignment(id, studentID)
	now := time.Now().Add(-48 * time.Hour)
	a.Status = models.StatusSubmitted
	a.ReviewerID = &reviewerID
	a.SubmittedAt = &now
	return a
}

func TestSubmitAssignsReviewerAndLogsTransition(t *testing.T) {
	f := newLifecycleFixture(
		newStubAssignments(draftAssignment(7, 3)),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)

	resp, err := f.svc.Submit(context.Background(), 3, 7, &dto.SubmitAssignmentRequest{ReviewerID: 9})
	require.NoError(t, err)

	assert.Equal(t, models.StatusSubmitted, resp.Status)
	require.NotNil(t, resp.ReviewerID)
	assert.Equal(t, int64(9), *resp.ReviewerID)

	stored := f.assignments.byID[7]
	require.NotNil(t, stored.SubmittedAt)
	assert.Equal(t, models.StatusSubmitted, stored.Status)

	require.Len(t, f.history.entries, 1)
	assert.Equal(t, models.ActionSubmitted, f.history.entries[0].Action)
	assert.Equal(t, int64(3), f.history.entries[0].ReviewerID)

	require.Len(t, f.notifications.rows, 1)
	assert.Equal(t, int64(9), f.notifications.rows[0].UserID)
	assert.Equal(t, models.NotificationSubmitted, f.notifications.rows[0].Type)

	assert.Len(t, f.mailer.submissionNotices, 1)
}

func TestSubmitOnlyFromDraft(t *testing.T) {
	f := newLifecycleFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)

	_, err := f.svc.Submit(context.Background(), 3, 7, &dto.SubmitAssignmentRequest{ReviewerID: 9})
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	assert.Empty(t, f.history.entries)
}

func TestSubmitRequiresUploadedFile(t *testing.T) {
	a := draftAssignment(7, 3)
	a.FilePath = ""
	f := newLifecycleFixture(
		newStubAssignments(a),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)

	_, err := f.svc.Submit(context.Background(), 3, 7, &dto.SubmitAssignmentRequest{ReviewerID: 9})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestSubmitReviewerEligibility(t *testing.T) {
	inactive := testReviewer(10, 1, models.RoleProfessor)
	inactive.IsActive = false

	tests := []struct {
		name       string
		reviewerID int64
	}{
		{"unknown user", 99},
		{"professor in another department", 11},
		{"head of department", 12},
		{"deactivated professor", 10},
		{"another student", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLifecycleFixture(
				newStubAssignments(draftAssignment(7, 3)),
				newStubUsers(
					testStudent(3, 1),
					testStudent(4, 1),
					inactive,
					testReviewer(11, 2, models.RoleProfessor),
					testReviewer(12, 1, models.RoleHOD),
				),
			)

			_, err := f.svc.Submit(context.Background(), 3, 7, &dto.SubmitAssignmentRequest{ReviewerID: tt.reviewerID})
			assert.ErrorIs(t, err, apperrors.ErrInvalidReviewer)
		})
	}
}

func TestSubmitForeignAssignmentNotFound(t *testing.T) {
	f := newLifecycleFixture(
		newStubAssignments(draftAssignment(7, 3)),
		newStubUsers(testStudent(3, 1), testStudent(5, 1), testReviewer(9, 1, models.RoleProfessor)),
	)

	_, err := f.svc.Submit(context.Background(), 5, 7, &dto.SubmitAssignmentRequest{ReviewerID: 9})
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
}

func TestResubmitRecoversReviewerFromRejection(t *testing.T) {
	a := draftAssignment(7, 3)
	a.Status = models.StatusRejected
	f := newLifecycleFixture(
		newStubAssignments(a),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)
	remark := "the literature review is missing"
	require.NoError(t, f.history.Insert(context.Background(), nil, &models.AssignmentHistory{
		AssignmentID: 7,
		ReviewerID:   9,
		Action:       models.ActionRejected,
		Remark:       &remark,
	}))

	resp, err := f.svc.Resubmit(context.Background(), 3, 7, &dto.ResubmitAssignmentRequest{}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.StatusSubmitted, resp.Status)
	require.NotNil(t, resp.ReviewerID)
	assert.Equal(t, int64(9), *resp.ReviewerID)
	require.NotNil(t, f.assignments.byID[7].SubmittedAt)

	require.Len(t, f.notifications.rows, 1)
	assert.Equal(t, int64(9), f.notifications.rows[0].UserID)
}

func TestResubmitOnlyFromRejected(t *testing.T) {
	f := newLifecycleFixture(
		newStubAssignments(draftAssignment(7, 3)),
		newStubUsers(testStudent(3, 1)),
	)

	_, err := f.svc.Resubmit(context.Background(), 3, 7, &dto.ResubmitAssignmentRequest{}, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestResubmitWithoutRejectionEntry(t *testing.T) {
	a := draftAssignment(7, 3)
	a.Status = models.StatusRejected
	f := newLifecycleFixture(
		newStubAssignments(a),
		newStubUsers(testStudent(3, 1)),
	)

	_, err := f.svc.Resubmit(context.Background(), 3, 7, &dto.ResubmitAssignmentRequest{}, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestRejectRequiresTenCharacterRemark(t *testing.T) {
	f := newLifecycleFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)

	for _, remark := range []string{"too short", "   padded    "} {
		_, err := f.svc.Reject(context.Background(), 9, 7, &dto.RejectAssignmentRequest{Remark: remark})
		assert.ErrorIs(t, err, apperrors.ErrRemarkTooShort)
	}

	assert.Empty(t, f.assignments.transitions)
	assert.Equal(t, models.StatusSubmitted, f.assignments.byID[7].Status)
}

func TestRejectClearsReviewerAndSignsEntry(t *testing.T) {
	f := newLifecycleFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)

	resp, err := f.svc.Reject(context.Background(), 9, 7, &dto.RejectAssignmentRequest{
		Remark: "needs a much more detailed methodology section",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusRejected, resp.Status)
	assert.Nil(t, resp.ReviewerID)
	assert.Nil(t, f.assignments.byID[7].ReviewerID)

	require.Len(t, f.history.entries, 1)
	entry := f.history.entries[0]
	assert.Equal(t, models.ActionRejected, entry.Action)
	assert.Equal(t, int64(9), entry.ReviewerID)
	require.NotNil(t, entry.Remark)
	assert.Equal(t, "needs a much more detailed methodology section", *entry.Remark)
	require.NotNil(t, entry.Signature)
	assert.NotEqual(t, "Reviewer 9", *entry.Signature)

	require.Len(t, f.notifications.rows, 1)
	assert.Equal(t, int64(3), f.notifications.rows[0].UserID)
	assert.Equal(t, models.NotificationRejected, f.notifications.rows[0].Type)
	assert.Len(t, f.mailer.rejectionNotices, 1)
}

func TestRejectByWrongReviewer(t *testing.T) {
	f := newLifecycleFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor), testReviewer(11, 1, models.RoleProfessor)),
	)

	_, err := f.svc.Reject(context.Background(), 11, 7, &dto.RejectAssignmentRequest{
		Remark: "this assignment was never assigned to me",
	})
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
}

func TestForwardWithinDepartment(t *testing.T) {
	f := newLifecycleFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(
			testStudent(3, 1),
			testReviewer(9, 1, models.RoleProfessor),
			testReviewer(12, 1, models.RoleHOD),
		),
	)

	resp, err := f.svc.Forward(context.Background(), 9, 7, &dto.ForwardAssignmentRequest{
		NewReviewerID: 12,
		Note:          "needs departmental sign-off",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusForwarded, resp.Status)
	require.NotNil(t, resp.ReviewerID)
	assert.Equal(t, int64(12), *resp.ReviewerID)

	require.Len(t, f.history.entries, 1)
	assert.Equal(t, models.ActionForwarded, f.history.entries[0].Action)
	require.NotNil(t, f.history.entries[0].Remark)
	assert.Equal(t, "needs departmental sign-off", *f.history.entries[0].Remark)

	require.Len(t, f.notifications.rows, 1)
	assert.Equal(t, int64(12), f.notifications.rows[0].UserID)
	assert.Equal(t, models.NotificationForwarded, f.notifications.rows[0].Type)
}

func TestForwardToSelf(t *testing.T) {
	f := newLifecycleFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)

	_, err := f.svc.Forward(context.Background(), 9, 7, &dto.ForwardAssignmentRequest{NewReviewerID: 9})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestForwardAcrossDepartments(t *testing.T) {
	f := newLifecycleFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(
			testStudent(3, 1),
			testReviewer(9, 1, models.RoleProfessor),
			testReviewer(20, 2, models.RoleProfessor),
		),
	)

	_, err := f.svc.Forward(context.Background(), 9, 7, &dto.ForwardAssignmentRequest{NewReviewerID: 20})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, models.StatusSubmitted, f.assignments.byID[7].Status)
}

func TestForwardToNonReviewer(t *testing.T) {
	f := newLifecycleFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(
			testStudent(3, 1),
			testStudent(4, 1),
			testReviewer(9, 1, models.RoleProfessor),
		),
	)

	_, err := f.svc.Forward(context.Background(), 9, 7, &dto.ForwardAssignmentRequest{NewReviewerID: 4})
	assert.ErrorIs(t, err, apperrors.ErrInvalidReviewer)
}

func TestUpdateDraftOnlyWhileDraft(t *testing.T) {
	f := newLifecycleFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(testStudent(3, 1)),
	)

	title := "Revised Title"
	_, err := f.svc.UpdateDraft(context.Background(), 3, 7, &dto.UpdateDraftRequest{Title: &title}, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestDeleteDraftRemovesFile(t *testing.T) {
	f := newLifecycleFixture(
		newStubAssignments(draftAssignment(7, 3)),
		newStubUsers(testStudent(3, 1)),
	)

	require.NoError(t, f.svc.DeleteDraft(context.Background(), 3, 7))
	assert.NotContains(t, f.assignments.byID, int64(7))
	assert.Equal(t, []string{"/uploads/assignments/survey.pdf"}, f.files.deleted)
}

func TestResubmitCleansUpOrphanedFileOnFailure(t *testing.T) {
	a := draftAssignment(7, 3)
	a.Status = models.StatusRejected
	assignments := newStubAssignments(a)
	assignments.failTransition = errStubFailure

	f := newLifecycleFixture(
		assignments,
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)
	remark := "the literature review is missing"
	require.NoError(t, f.history.Insert(context.Background(), nil, &models.AssignmentHistory{
		AssignmentID: 7,
		ReviewerID:   9,
		Action:       models.ActionRejected,
		Remark:       &remark,
	}))

	_, err := f.svc.Resubmit(context.Background(), 3, 7, &dto.ResubmitAssignmentRequest{}, fileHeader(t))
	require.Error(t, err)

	require.Len(t, f.files.saved, 1)
	assert.Equal(t, f.files.saved, f.files.deleted)
}

func TestAssignmentVisibility(t *testing.T) {
	f := newLifecycleFixture(
		newStubAssignments(submittedAssignment(7, 3, 12)),
		newStubUsers(
			testStudent(3, 1),
			testReviewer(9, 1, models.RoleProfessor),
			testReviewer(12, 1, models.RoleHOD),
		),
	)
	// Reviewer 9 forwarded the assignment to 12 earlier.
	require.NoError(t, f.history.Insert(context.Background(), nil, &models.AssignmentHistory{
		AssignmentID: 7,
		ReviewerID:   9,
		Action:       models.ActionForwarded,
	}))

	_, err := f.svc.GetAssignment(context.Background(), 3, models.RoleStudent, 7)
	assert.NoError(t, err, "owner can view")

	_, err = f.svc.GetAssignment(context.Background(), 12, models.RoleHOD, 7)
	assert.NoError(t, err, "current reviewer can view")

	_, err = f.svc.GetAssignment(context.Background(), 9, models.RoleProfessor, 7)
	assert.NoError(t, err, "past actor can view")

	_, err = f.svc.GetAssignment(context.Background(), 50, models.RoleProfessor, 7)
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound, "strangers see not found")

	_, err = f.svc.GetAssignment(context.Background(), 50, models.RoleAdmin, 7)
	assert.NoError(t, err, "admins can view")
}

func TestReviewerDashboardReportsDaysPending(t *testing.T) {
	a := submittedAssignment(7, 3, 9)
	submitted := time.Now().Add(-72 * time.Hour)
	a.SubmittedAt = &submitted
	a.Student = testStudent(3, 1)

	f := newLifecycleFixture(
		newStubAssignments(a),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)

	rows, err := f.svc.GetReviewerDashboard(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].DaysPending)
	assert.Equal(t, "Student 3", rows[0].StudentName)
}

package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaanyildiz/assignflow/internal/app/models"
	"github.com/kaanyildiz/assignflow/internal/app/models/dto"
	"github.com/kaanyildiz/assignflow/internal/pkg/apperrors"
	"github.com/kaanyildiz/assignflow/internal/pkg/otpstore"
)

type approvalFixture struct {
	assignments   *stubAssignments
	history       *stubHistory
	notifications *stubNotifications
	store         *otpstore.MemoryStore
	mailer        *stubMailer
	svc           ApprovalService
}

func newApprovalFixture(assignments *stubAssignments, users *stubUsers) *approvalFixture {
	f := &approvalFixture{
		assignments:   assignments,
		history:       &stubHistory{},
		notifications: &stubNotifications{},
		store:         otpstore.NewMemoryStore(),
		mailer:        &stubMailer{},
	}
	f.svc = NewApprovalService(
		f.assignments, f.history, f.notifications, users,
		passthroughTx{}, f.store, f.mailer, 10*time.Minute,
	)
	return f
}

func approvalKey(assignmentID, reviewerID int64) otpstore.Key {
	return otpstore.Key{AssignmentID: assignmentID, ApproverID: reviewerID}
}

func TestRequestApprovalCodeStoresAndEmails(t *testing.T) {
	f := newApprovalFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)

	err := f.svc.RequestApprovalOTP(context.Background(), 9, 7, &dto.RequestApprovalOTPRequest{
		Remarks: "solid work",
	})
	require.NoError(t, err)

	require.Len(t, f.mailer.approvalCodes, 1)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), f.mailer.approvalCodes[0])

	entry, err := f.store.Get(context.Background(), approvalKey(7, 9))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, f.mailer.approvalCodes[0], entry.Code)
	assert.Equal(t, "solid work", entry.Remark)
}

func TestRequestApprovalCodeReplacesPendingCode(t *testing.T) {
	f := newApprovalFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)

	require.NoError(t, f.svc.RequestApprovalOTP(context.Background(), 9, 7, &dto.RequestApprovalOTPRequest{}))
	require.NoError(t, f.svc.RequestApprovalOTP(context.Background(), 9, 7, &dto.RequestApprovalOTPRequest{}))

	entry, err := f.store.Get(context.Background(), approvalKey(7, 9))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, f.mailer.approvalCodes[1], entry.Code)
}

func TestRequestApprovalCodeRequiresAssignee(t *testing.T) {
	f := newApprovalFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor), testReviewer(11, 1, models.RoleProfessor)),
	)

	err := f.svc.RequestApprovalOTP(context.Background(), 11, 7, &dto.RequestApprovalOTPRequest{})
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
}

func TestRequestApprovalCodeRequiresReviewableStatus(t *testing.T) {
	a := submittedAssignment(7, 3, 9)
	a.Status = models.StatusApproved
	f := newApprovalFixture(
		newStubAssignments(a),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)

	err := f.svc.RequestApprovalOTP(context.Background(), 9, 7, &dto.RequestApprovalOTPRequest{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestRequestApprovalCodeDiscardedWhenEmailFails(t *testing.T) {
	f := newApprovalFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)
	f.mailer.failApprovalCode = errStubFailure

	err := f.svc.RequestApprovalOTP(context.Background(), 9, 7, &dto.RequestApprovalOTPRequest{})
	require.Error(t, err)

	entry, err := f.store.Get(context.Background(), approvalKey(7, 9))
	require.NoError(t, err)
	assert.Nil(t, entry, "an unusable code must not stay pending")
}

func TestVerifyApprovalCodeApproves(t *testing.T) {
	f := newApprovalFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)
	require.NoError(t, f.store.Put(context.Background(), approvalKey(7, 9), otpstore.Entry{
		Code:      "428519",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}))

	resp, err := f.svc.VerifyApprovalOTP(context.Background(), 9, 7, &dto.VerifyApprovalOTPRequest{
		OTP:     "428519",
		Remarks: "approved as-is",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, resp.Status)
	assert.Equal(t, models.StatusApproved, f.assignments.byID[7].Status)

	require.Len(t, f.history.entries, 1)
	entry := f.history.entries[0]
	assert.Equal(t, models.ActionApproved, entry.Action)
	require.NotNil(t, entry.Remark)
	assert.Equal(t, "approved as-is", *entry.Remark)
	require.NotNil(t, entry.Signature)
	assert.NotEmpty(t, *entry.Signature)

	require.Len(t, f.notifications.rows, 1)
	assert.Equal(t, int64(3), f.notifications.rows[0].UserID)
	assert.Equal(t, models.NotificationApproved, f.notifications.rows[0].Type)
}

func TestVerifyApprovalCodeIsSingleUse(t *testing.T) {
	f := newApprovalFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)
	require.NoError(t, f.store.Put(context.Background(), approvalKey(7, 9), otpstore.Entry{
		Code:      "428519",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}))

	_, err := f.svc.VerifyApprovalOTP(context.Background(), 9, 7, &dto.VerifyApprovalOTPRequest{OTP: "428519"})
	require.NoError(t, err)

	_, err = f.svc.VerifyApprovalOTP(context.Background(), 9, 7, &dto.VerifyApprovalOTPRequest{OTP: "428519"})
	assert.ErrorIs(t, err, apperrors.ErrOTPExpired)
}

func TestVerifyWrongCodeKeepsPendingCode(t *testing.T) {
	f := newApprovalFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)
	require.NoError(t, f.store.Put(context.Background(), approvalKey(7, 9), otpstore.Entry{
		Code:      "428519",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}))

	_, err := f.svc.VerifyApprovalOTP(context.Background(), 9, 7, &dto.VerifyApprovalOTPRequest{OTP: "000000"})
	assert.ErrorIs(t, err, apperrors.ErrOTPInvalid)
	assert.Equal(t, models.StatusSubmitted, f.assignments.byID[7].Status)

	// A wrong guess does not burn the code.
	_, err = f.svc.VerifyApprovalOTP(context.Background(), 9, 7, &dto.VerifyApprovalOTPRequest{OTP: "428519"})
	assert.NoError(t, err)
}

func TestVerifyExpiredCode(t *testing.T) {
	f := newApprovalFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)
	require.NoError(t, f.store.Put(context.Background(), approvalKey(7, 9), otpstore.Entry{
		Code:      "428519",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := f.svc.VerifyApprovalOTP(context.Background(), 9, 7, &dto.VerifyApprovalOTPRequest{OTP: "428519"})
	assert.ErrorIs(t, err, apperrors.ErrOTPExpired)
	assert.Equal(t, models.StatusSubmitted, f.assignments.byID[7].Status)
}

func TestVerifyWithoutRequestedCode(t *testing.T) {
	f := newApprovalFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)

	_, err := f.svc.VerifyApprovalOTP(context.Background(), 9, 7, &dto.VerifyApprovalOTPRequest{OTP: "428519"})
	assert.ErrorIs(t, err, apperrors.ErrOTPExpired)
}

func TestVerifyRequestTimeRemarkCarriesOver(t *testing.T) {
	f := newApprovalFixture(
		newStubAssignments(submittedAssignment(7, 3, 9)),
		newStubUsers(testStudent(3, 1), testReviewer(9, 1, models.RoleProfessor)),
	)
	require.NoError(t, f.store.Put(context.Background(), approvalKey(7, 9), otpstore.Entry{
		Code:      "428519",
		Remark:    "captured at request time",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}))

	_, err := f.svc.VerifyApprovalOTP(context.Background(), 9, 7, &dto.VerifyApprovalOTPRequest{OTP: "428519"})
	require.NoError(t, err)

	require.Len(t, f.history.entries, 1)
	require.NotNil(t, f.history.entries[0].Remark)
	assert.Equal(t, "captured at request time", *f.history.entries[0].Remark)
}

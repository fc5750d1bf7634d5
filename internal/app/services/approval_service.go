package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kaanyildiz/assignflow/internal/app/models"
	"github.com/kaanyildiz/assignflow/internal/app/models/dto"
	"github.com/kaanyildiz/assignflow/internal/pkg/apperrors"
	"github.com/kaanyildiz/assignflow/internal/pkg/auth"
	"github.com/kaanyildiz/assignflow/internal/pkg/email"
	"github.com/kaanyildiz/assignflow/internal/pkg/logger"
	"github.com/kaanyildiz/assignflow/internal/pkg/otpstore"
)

// ApprovalService defines the interface for the OTP-gated approval flow
type ApprovalService interface {
	RequestApprovalOTP(ctx context.Context, reviewerID, assignmentID int64, req *dto.RequestApprovalOTPRequest) error
	VerifyApprovalOTP(ctx context.Context, reviewerID, assignmentID int64, req *dto.VerifyApprovalOTPRequest) (*dto.AssignmentResponse, error)
}

// approvalServiceImpl implements ApprovalService
type approvalServiceImpl struct {
	assignmentRepo   assignmentStore
	historyRepo      historyStore
	notificationRepo notificationStore
	userRepo         userStore
	txManager        txManager
	otpStore         otpstore.Store
	emailService     email.EmailService
	otpTTL           time.Duration
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(
	assignmentRepo assignmentStore,
	historyRepo historyStore,
	notificationRepo notificationStore,
	userRepo userStore,
	txManager txManager,
	otpStore otpstore.Store,
	emailService email.EmailService,
	otpTTL time.Duration,
) ApprovalService {
	return &approvalServiceImpl{
		assignmentRepo:   assignmentRepo,
		historyRepo:      historyRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		txManager:        txManager,
		otpStore:         otpStore,
		emailService:     emailService,
		otpTTL:           otpTTL,
	}
}

// RequestApprovalOTP generates a single-use approval code for the assignment
// and emails it to the reviewer. Requesting again replaces any pending code.
func (s *approvalServiceImpl) RequestApprovalOTP(ctx context.Context, reviewerID, assignmentID int64, req *dto.RequestApprovalOTPRequest) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return err
	}
	if !assignment.AssignedTo(reviewerID) {
		return apperrors.ErrAssignmentNotFound
	}
	if !assignment.Status.UnderReview() {
		return apperrors.NewInvalidStateError(fmt.Sprintf("assignment in status %s cannot be approved", assignment.Status))
	}

	reviewer, err := s.userRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return err
	}

	code, err := generateApprovalCode()
	if err != nil {
		return fmt.Errorf("error generating approval code: %w", err)
	}

	entry := otpstore.Entry{
		Code:      code,
		Remark:    strings.TrimSpace(req.Remarks),
		Signature: strings.TrimSpace(req.Signature),
		ExpiresAt: time.Now().Add(s.otpTTL),
	}
	key := otpstore.Key{AssignmentID: assignmentID, ApproverID: reviewerID}
	if err := s.otpStore.Put(ctx, key, entry); err != nil {
		return fmt.Errorf("error storing approval code: %w", err)
	}

	if err := s.emailService.SendApprovalCode(reviewer.Email, reviewer.DisplayName(), assignment.Title, code, s.otpTTL); err != nil {
		// Without the email the code is unusable; drop it and fail the request.
		if delErr := s.otpStore.Delete(ctx, key); delErr != nil {
			logger.Warn().Err(delErr).Msg("Failed to discard approval code after email failure")
		}
		return fmt.Errorf("error sending approval code: %w", err)
	}

	logger.Info().
		Int64("assignmentId", assignmentID).
		Int64("reviewerId", reviewerID).
		Msg("Approval code issued")
	return nil
}

// VerifyApprovalOTP checks the submitted code and, when it matches, finalizes
// the approval: the assignment becomes APPROVED, a signed history entry is
// appended and the student is notified, all in one transaction. The code is
// single-use; a wrong code leaves it pending for another attempt.
func (s *approvalServiceImpl) VerifyApprovalOTP(ctx context.Context, reviewerID, assignmentID int64, req *dto.VerifyApprovalOTPRequest) (*dto.AssignmentResponse, error) {
	key := otpstore.Key{AssignmentID: assignmentID, ApproverID: reviewerID}
	entry, err := s.otpStore.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("error loading approval code: %w", err)
	}
	if entry == nil {
		return nil, apperrors.ErrOTPExpired
	}
	if entry.Code != req.OTP {
		return nil, apperrors.ErrOTPInvalid
	}

	// Single use: the code is consumed the moment it matches, whether or not
	// the approval below succeeds.
	if err := s.otpStore.Delete(ctx, key); err != nil {
		logger.Warn().Err(err).Msg("Failed to discard consumed approval code")
	}

	// Verify-time values override the ones captured at request time.
	remark := strings.TrimSpace(req.Remarks)
	if remark == "" {
		remark = entry.Remark
	}
	signature := strings.TrimSpace(req.Signature)
	if signature == "" {
		signature = entry.Signature
	}

	reviewer, err := s.userRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, err
	}
	if signature == "" {
		signature = reviewer.DisplayName()
	}
	hashedSignature, err := auth.HashSignature(signature)
	if err != nil {
		return nil, fmt.Errorf("error hashing signature: %w", err)
	}

	var updated *models.Assignment
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		assignment, err := s.assignmentRepo.GetByIDForUpdate(ctx, tx, assignmentID)
		if err != nil {
			return err
		}
		if !assignment.AssignedTo(reviewerID) {
			return apperrors.ErrAssignmentNotFound
		}
		if !assignment.Status.UnderReview() {
			return apperrors.NewInvalidStateError(fmt.Sprintf("assignment in status %s cannot be approved", assignment.Status))
		}

		assignment.Status = models.StatusApproved

		if err := s.assignmentRepo.ApplyTransition(ctx, tx, assignment); err != nil {
			return err
		}
		history := &models.AssignmentHistory{
			AssignmentID: assignment.ID,
			ReviewerID:   reviewerID,
			Action:       models.ActionApproved,
			Signature:    &hashedSignature,
		}
		if remark != "" {
			history.Remark = &remark
		}
		if err := s.historyRepo.Insert(ctx, tx, history); err != nil {
			return err
		}
		if err := s.notificationRepo.Insert(ctx, tx, &models.Notification{
			UserID:       assignment.StudentID,
			AssignmentID: assignment.ID,
			Message:      fmt.Sprintf("\"%s\" was approved by %s", assignment.Title, reviewer.DisplayName()),
			Type:         models.NotificationApproved,
		}); err != nil {
			return err
		}
		updated = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NewAssignmentResponse(updated)
	return &resp, nil
}

// generateApprovalCode returns a 6-digit numeric code from crypto/rand
func generateApprovalCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

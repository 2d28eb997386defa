package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"payease.backend/internal/domain/entities"
	domainerrors "payease.backend/internal/domain/errors"
	"payease.backend/internal/domain/repositories"
	"payease.backend/internal/infrastructure/notifications"
	"payease.backend/pkg/logger"
	"payease.backend/pkg/metrics"
)

// AdminUsecase handles the admin review workflow and blacklist management
type AdminUsecase struct {
	repo          repositories.VerificationRepository
	blacklistRepo repositories.BlacklistRepository
	notifier      notifications.DecisionNotifier
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(repo repositories.VerificationRepository, blacklistRepo repositories.BlacklistRepository, notifier notifications.DecisionNotifier) *AdminUsecase {
	return &AdminUsecase{
		repo:          repo,
		blacklistRepo: blacklistRepo,
		notifier:      notifier,
	}
}

// Approve marks a pending application approved. Unknown merchants fail with
// ErrNotFound, already-reviewed ones with ErrAlreadyReviewed.
func (u *AdminUsecase) Approve(ctx context.Context, merchantID uuid.UUID, reviewerID string) error {
	if strings.TrimSpace(reviewerID) == "" {
		return fmt.Errorf("%w: reviewerId is required", domainerrors.ErrValidation)
	}
	return u.decide(ctx, merchantID, entities.VerificationStatusApproved, reviewerID, null.String{})
}

// Reject marks a pending application rejected with a mandatory reason.
func (u *AdminUsecase) Reject(ctx context.Context, merchantID uuid.UUID, reason, reviewerID string) error {
	if strings.TrimSpace(reviewerID) == "" {
		return fmt.Errorf("%w: reviewerId is required", domainerrors.ErrValidation)
	}
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: rejection reason is required", domainerrors.ErrValidation)
	}
	return u.decide(ctx, merchantID, entities.VerificationStatusRejected, reviewerID, null.StringFrom(reason))
}

func (u *AdminUsecase) decide(ctx context.Context, merchantID uuid.UUID, status entities.VerificationStatus, reviewerID string, reason null.String) error {
	record, err := u.repo.GetByID(ctx, merchantID)
	if err != nil {
		return err
	}

	if err := u.repo.Decide(ctx, merchantID, status, reviewerID, reason, time.Now()); err != nil {
		return err
	}

	metrics.DecisionsTotal.WithLabelValues(string(status)).Inc()
	logger.Info(ctx, "Merchant application reviewed",
		zap.String("merchant_id", merchantID.String()),
		zap.String("decision", string(status)),
		zap.String("reviewer_id", reviewerID),
	)

	// Notification is fire-and-forget: a delivery failure never rolls the
	// decision back.
	email := record.SignupData.Email
	go func() {
		if err := u.notifier.NotifyDecision(context.Background(), email, status, reason); err != nil {
			logger.Error(context.Background(), "Decision notification failed",
				zap.String("merchant_id", merchantID.String()),
				zap.Error(err),
			)
		}
	}()

	return nil
}

// ListBlacklist returns all deny-list entries
func (u *AdminUsecase) ListBlacklist(ctx context.Context) ([]*entities.BlacklistEntry, error) {
	return u.blacklistRepo.List(ctx)
}

// AddToBlacklist appends a deny-list entry
func (u *AdminUsecase) AddToBlacklist(ctx context.Context, input *entities.BlacklistAddInput) (*entities.BlacklistEntry, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: type must be email or phone", domainerrors.ErrValidation)
	}
	if strings.TrimSpace(input.Value) == "" || strings.TrimSpace(input.Reason) == "" {
		return nil, fmt.Errorf("%w: value and reason are required", domainerrors.ErrValidation)
	}

	entry := &entities.BlacklistEntry{
		Type:    input.Type,
		Value:   input.Value,
		Reason:  input.Reason,
		AddedAt: time.Now(),
	}
	if err := u.blacklistRepo.Add(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"payease.backend/internal/domain/entities"
	domainerrors "payease.backend/internal/domain/errors"
	"payease.backend/internal/domain/repositories"
	"payease.backend/pkg/logger"
	"payease.backend/pkg/metrics"
	"payease.backend/pkg/utils"
)

// VerificationUsecase handles merchant signup intake and status queries
type VerificationUsecase struct {
	repo   repositories.VerificationRepository
	engine *CheckEngine
	locks  *keyedMutex
}

// NewVerificationUsecase creates a new verification usecase
func NewVerificationUsecase(repo repositories.VerificationRepository, engine *CheckEngine) *VerificationUsecase {
	return &VerificationUsecase{
		repo:   repo,
		engine: engine,
		locks:  newKeyedMutex(),
	}
}

// Submit validates the signup data, creates the verification record and runs
// the automated checks before returning. The phone OTP check stays pending
// until the merchant completes phone verification.
func (u *VerificationUsecase) Submit(ctx context.Context, data *entities.MerchantSignupData) (*entities.SignupResponse, error) {
	if err := validateSignupData(data); err != nil {
		return nil, err
	}

	record := &entities.MerchantVerificationRecord{
		MerchantID:  utils.GenerateUUIDv7(),
		Status:      entities.VerificationStatusPending,
		SubmittedAt: time.Now(),
		Checks:      entities.NewPendingChecks(),
		TrustScore:  0,
		SignupData:  *data,
	}

	if err := u.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	if err := u.engine.RunChecks(ctx, record); err != nil {
		return nil, err
	}
	if err := u.repo.UpdateChecks(ctx, record.MerchantID, record.Checks, record.TrustScore); err != nil {
		return nil, err
	}

	metrics.SignupsTotal.Inc()
	logger.Info(ctx, "Merchant verification submitted",
		zap.String("merchant_id", record.MerchantID.String()),
		zap.Int("trust_score", record.TrustScore),
	)

	return &entities.SignupResponse{
		MerchantID: record.MerchantID,
		Status:     record.Status,
		TrustScore: record.TrustScore,
		Checks:     record.Checks,
	}, nil
}

// GetStatus returns the full verification record for a merchant
func (u *VerificationUsecase) GetStatus(ctx context.Context, merchantID uuid.UUID) (*entities.MerchantVerificationRecord, error) {
	return u.repo.GetByID(ctx, merchantID)
}

// GetTrustScore returns the current trust score for a merchant
func (u *VerificationUsecase) GetTrustScore(ctx context.Context, merchantID uuid.UUID) (int, error) {
	record, err := u.repo.GetByID(ctx, merchantID)
	if err != nil {
		return 0, err
	}
	return record.TrustScore, nil
}

// CanListProducts reports whether the merchant has been approved
func (u *VerificationUsecase) CanListProducts(ctx context.Context, merchantID uuid.UUID) (bool, error) {
	record, err := u.repo.GetByID(ctx, merchantID)
	if err != nil {
		return false, err
	}
	return record.Status == entities.VerificationStatusApproved, nil
}

// ListPendingReview returns pending applications, newest first
func (u *VerificationUsecase) ListPendingReview(ctx context.Context) ([]*entities.MerchantVerificationRecord, error) {
	return u.repo.ListPendingByNewest(ctx)
}

// MarkPhoneVerified records a completed phone OTP and recomputes the trust
// score from the full check set, which makes repeated calls idempotent.
func (u *VerificationUsecase) MarkPhoneVerified(ctx context.Context, merchantID uuid.UUID) (*entities.MerchantVerificationRecord, error) {
	unlock := u.locks.Lock(merchantID.String())
	defer unlock()

	record, err := u.repo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	record.Checks.PhoneOTP = entities.CheckPassed
	record.TrustScore = u.engine.ComputeTrustScore(record)

	if err := u.repo.UpdateChecks(ctx, merchantID, record.Checks, record.TrustScore); err != nil {
		return nil, err
	}
	return record, nil
}

func validateSignupData(data *entities.MerchantSignupData) error {
	required := []struct {
		name  string
		value string
	}{
		{"businessName", data.BusinessName},
		{"contactPersonName", data.ContactPersonName},
		{"contactPhone", data.ContactPhone},
		{"email", data.Email},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: %s is required", domainerrors.ErrValidation, field.name)
		}
	}
	return nil
}

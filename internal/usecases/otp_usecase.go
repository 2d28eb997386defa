package usecases

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"payease.backend/internal/domain/entities"
	domainerrors "payease.backend/internal/domain/errors"
	"payease.backend/internal/domain/repositories"
	"payease.backend/internal/infrastructure/notifications"
	"payease.backend/pkg/logger"
	"payease.backend/pkg/metrics"
)

// OTPUsecase issues and verifies one-time codes for email and phone
// destinations. It is shared by the merchant flow and the general user
// verification flow.
type OTPUsecase struct {
	store       repositories.OTPChallengeStore
	sender      notifications.CodeSender
	expiry      time.Duration
	maxAttempts int
	locks       *keyedMutex
}

// NewOTPUsecase creates a new OTP usecase
func NewOTPUsecase(store repositories.OTPChallengeStore, sender notifications.CodeSender, expiry time.Duration, maxAttempts int) *OTPUsecase {
	return &OTPUsecase{
		store:       store,
		sender:      sender,
		expiry:      expiry,
		maxAttempts: maxAttempts,
		locks:       newKeyedMutex(),
	}
}

// Send issues a fresh challenge for the destination, replacing any prior
// unconsumed challenge for the same (channel, destination) key.
func (u *OTPUsecase) Send(ctx context.Context, channel entities.OTPChannel, value string) error {
	if !channel.Valid() {
		return fmt.Errorf("%w: type must be email or phone", domainerrors.ErrValidation)
	}
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: value is required", domainerrors.ErrValidation)
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	challenge := &entities.OTPChallenge{
		Type:       channel,
		Value:      value,
		Code:       code,
		ExpiresAt:  time.Now().Add(u.expiry),
		IsVerified: false,
		Attempts:   0,
	}

	unlock := u.locks.Lock(otpLockKey(channel, value))
	defer unlock()

	if err := u.store.Put(ctx, challenge, u.expiry); err != nil {
		return err
	}

	if err := u.sender.SendCode(ctx, channel, value, code); err != nil {
		return err
	}

	metrics.OTPChallengesTotal.WithLabelValues(string(channel)).Inc()
	logger.Info(ctx, "OTP challenge issued",
		zap.String("channel", string(channel)),
		zap.String("destination", value),
	)
	return nil
}

// Verify checks a submitted code against the outstanding challenge.
// A verified challenge is retained, so repeating the correct code keeps
// succeeding until the challenge expires.
func (u *OTPUsecase) Verify(ctx context.Context, channel entities.OTPChannel, value, code string) error {
	unlock := u.locks.Lock(otpLockKey(channel, value))
	defer unlock()

	challenge, err := u.store.Get(ctx, channel, value)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return fmt.Errorf("%w: no verification request found", domainerrors.ErrNotFound)
		}
		return err
	}

	// Idempotent success path: the code was already accepted once.
	if challenge.IsVerified && challenge.Code == code {
		return nil
	}

	challenge.Attempts++
	if challenge.Attempts > u.maxAttempts {
		if err := u.store.Delete(ctx, channel, value); err != nil {
			return err
		}
		return domainerrors.ErrTooManyAttempts
	}

	if time.Now().After(challenge.ExpiresAt) {
		if err := u.store.Delete(ctx, channel, value); err != nil {
			return err
		}
		return domainerrors.ErrExpired
	}

	if challenge.Code != code {
		if err := u.store.Put(ctx, challenge, 0); err != nil {
			return err
		}
		return domainerrors.ErrCodeMismatch
	}

	challenge.IsVerified = true
	return u.store.Put(ctx, challenge, 0)
}

// IsVerified reports whether the destination holds a verified challenge
func (u *OTPUsecase) IsVerified(ctx context.Context, channel entities.OTPChannel, value string) (bool, error) {
	challenge, err := u.store.Get(ctx, channel, value)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return challenge.IsVerified, nil
}

func otpLockKey(channel entities.OTPChannel, value string) string {
	return string(channel) + ":" + value
}

// generateCode returns a cryptographically random 6-digit code
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

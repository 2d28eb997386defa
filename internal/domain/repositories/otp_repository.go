package repositories

import (
	"context"
	"time"

	"payease.backend/internal/domain/entities"
)

// OTPChallengeStore holds outstanding OTP challenges keyed by (channel, destination).
// Put replaces any prior challenge for the same key.
type OTPChallengeStore interface {
	Put(ctx context.Context, challenge *entities.OTPChallenge, ttl time.Duration) error
	// Get returns ErrNotFound when no challenge exists for the key.
	Get(ctx context.Context, channel entities.OTPChannel, value string) (*entities.OTPChallenge, error)
	Delete(ctx context.Context, channel entities.OTPChannel, value string) error
}

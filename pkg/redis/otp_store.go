package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"payease.backend/internal/domain/entities"
	domainerrors "payease.backend/internal/domain/errors"
)

var (
	setOTPValue = Set
	getOTPValue = Get
	delOTPValue = Del
)

// OTPStore keeps outstanding OTP challenges in Redis. The key TTL mirrors the
// challenge expiry, so expired challenges disappear without a sweeper.
type OTPStore struct{}

// NewOTPStore creates a new OTP challenge store
func NewOTPStore() *OTPStore {
	return &OTPStore{}
}

func otpKey(channel entities.OTPChannel, value string) string {
	return "otp:" + string(channel) + ":" + value
}

// Put stores a challenge, replacing any prior challenge for the same key.
// A ttl <= 0 keeps the key's remaining TTL (used for attempt-count updates).
func (s *OTPStore) Put(ctx context.Context, challenge *entities.OTPChallenge, ttl time.Duration) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = goredis.KeepTTL
	}
	return setOTPValue(ctx, otpKey(challenge.Type, challenge.Value), data, ttl)
}

// Get retrieves the challenge for a (channel, destination) key
func (s *OTPStore) Get(ctx context.Context, channel entities.OTPChannel, value string) (*entities.OTPChallenge, error) {
	data, err := getOTPValue(ctx, otpKey(channel, value))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	var challenge entities.OTPChallenge
	if err := json.Unmarshal([]byte(data), &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

// Delete removes the challenge for a (channel, destination) key
func (s *OTPStore) Delete(ctx context.Context, channel entities.OTPChannel, value string) error {
	return delOTPValue(ctx, otpKey(channel, value))
}

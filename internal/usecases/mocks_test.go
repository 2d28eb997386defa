package usecases_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/volatiletech/null/v8"
	"payease.backend/internal/domain/entities"
	domainerrors "payease.backend/internal/domain/errors"
)

// Mock VerificationRepository
type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) Create(ctx context.Context, record *entities.MerchantVerificationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockVerificationRepository) GetByID(ctx context.Context, merchantID uuid.UUID) (*entities.MerchantVerificationRecord, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MerchantVerificationRecord), args.Error(1)
}

func (m *MockVerificationRepository) UpdateChecks(ctx context.Context, merchantID uuid.UUID, checks entities.VerificationChecks, trustScore int) error {
	args := m.Called(ctx, merchantID, checks, trustScore)
	return args.Error(0)
}

func (m *MockVerificationRepository) ListPendingByNewest(ctx context.Context) ([]*entities.MerchantVerificationRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MerchantVerificationRecord), args.Error(1)
}

func (m *MockVerificationRepository) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVerificationRepository) Decide(ctx context.Context, merchantID uuid.UUID, status entities.VerificationStatus, reviewerID string, reason null.String, reviewedAt time.Time) error {
	args := m.Called(ctx, merchantID, status, reviewerID, reason, reviewedAt)
	return args.Error(0)
}

// Mock BlacklistRepository
type MockBlacklistRepository struct {
	mock.Mock
}

func (m *MockBlacklistRepository) Contains(ctx context.Context, email, phone string) (bool, error) {
	args := m.Called(ctx, email, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlacklistRepository) Add(ctx context.Context, entry *entities.BlacklistEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockBlacklistRepository) List(ctx context.Context) ([]*entities.BlacklistEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BlacklistEntry), args.Error(1)
}

// Mock DecisionNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyDecision(ctx context.Context, email string, status entities.VerificationStatus, reason null.String) error {
	args := m.Called(ctx, email, status, reason)
	return args.Error(0)
}

// fakeBankClient returns a canned penny-drop result
type fakeBankClient struct {
	verified bool
	err      error
	delay    time.Duration
}

func (c *fakeBankClient) VerifyAccount(ctx context.Context, accountNumber, routingCode string) (bool, error) {
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return c.verified, c.err
}

// memOTPStore is an in-memory OTPChallengeStore for usecase tests
type memOTPStore struct {
	mu         sync.Mutex
	challenges map[string]entities.OTPChallenge
}

func newMemOTPStore() *memOTPStore {
	return &memOTPStore{challenges: map[string]entities.OTPChallenge{}}
}

func (s *memOTPStore) key(channel entities.OTPChannel, value string) string {
	return string(channel) + ":" + value
}

func (s *memOTPStore) Put(_ context.Context, challenge *entities.OTPChallenge, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[s.key(challenge.Type, challenge.Value)] = *challenge
	return nil
}

func (s *memOTPStore) Get(_ context.Context, channel entities.OTPChannel, value string) (*entities.OTPChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	challenge, ok := s.challenges[s.key(channel, value)]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	out := challenge
	return &out, nil
}

func (s *memOTPStore) Delete(_ context.Context, channel entities.OTPChannel, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, s.key(channel, value))
	return nil
}

// captureSender records issued codes instead of delivering them
type captureSender struct {
	mu    sync.Mutex
	codes []string
	err   error
}

func (s *captureSender) SendCode(_ context.Context, _ entities.OTPChannel, _ string, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.codes = append(s.codes, code)
	return nil
}

func (s *captureSender) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.codes) == 0 {
		return ""
	}
	return s.codes[len(s.codes)-1]
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"payease.backend/internal/domain/entities"
	domainerrors "payease.backend/internal/domain/errors"
	"payease.backend/internal/infrastructure/bankcheck"
	"payease.backend/internal/usecases"
)

type memVerificationRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*entities.MerchantVerificationRecord
}

func newMemVerificationRepo() *memVerificationRepo {
	return &memVerificationRepo{records: make(map[uuid.UUID]*entities.MerchantVerificationRecord)}
}

func (r *memVerificationRepo) Create(_ context.Context, record *entities.MerchantVerificationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *record
	r.records[record.MerchantID] = &clone
	return nil
}

func (r *memVerificationRepo) GetByID(_ context.Context, merchantID uuid.UUID) (*entities.MerchantVerificationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[merchantID]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *memVerificationRepo) UpdateChecks(_ context.Context, merchantID uuid.UUID, checks entities.VerificationChecks, trustScore int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[merchantID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	record.Checks = checks
	record.TrustScore = trustScore
	return nil
}

func (r *memVerificationRepo) ListPendingByNewest(_ context.Context) ([]*entities.MerchantVerificationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var records []*entities.MerchantVerificationRecord
	for _, record := range r.records {
		if record.Status == entities.VerificationStatusPending {
			clone := *record
			records = append(records, &clone)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].SubmittedAt.After(records[j].SubmittedAt)
	})
	return records, nil
}

func (r *memVerificationRepo) CountPending(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, record := range r.records {
		if record.Status == entities.VerificationStatusPending {
			total++
		}
	}
	return total, nil
}

func (r *memVerificationRepo) Decide(_ context.Context, merchantID uuid.UUID, status entities.VerificationStatus, reviewerID string, reason null.String, reviewedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[merchantID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if record.Status != entities.VerificationStatusPending {
		return domainerrors.ErrAlreadyReviewed
	}
	record.Status = status
	record.ReviewedBy = null.StringFrom(reviewerID)
	record.ReviewedAt = null.TimeFrom(reviewedAt)
	record.RejectionReason = reason
	return nil
}

type memBlacklistRepo struct {
	mu      sync.Mutex
	entries []*entities.BlacklistEntry
}

func (r *memBlacklistRepo) Contains(_ context.Context, email, phone string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.Type == entities.BlacklistTypeEmail && entry.Value == email {
			return true, nil
		}
		if entry.Type == entities.BlacklistTypePhone && entry.Value == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBlacklistRepo) Add(_ context.Context, entry *entities.BlacklistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memBlacklistRepo) List(_ context.Context) ([]*entities.BlacklistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entities.BlacklistEntry(nil), r.entries...), nil
}

type memOTPStore struct {
	mu         sync.Mutex
	challenges map[string]entities.OTPChallenge
}

func newMemOTPStore() *memOTPStore {
	return &memOTPStore{challenges: make(map[string]entities.OTPChallenge)}
}

func otpStoreKey(channel entities.OTPChannel, value string) string {
	return string(channel) + ":" + value
}

func (s *memOTPStore) Put(_ context.Context, challenge *entities.OTPChallenge, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[otpStoreKey(challenge.Type, challenge.Value)] = *challenge
	return nil
}

func (s *memOTPStore) Get(_ context.Context, channel entities.OTPChannel, value string) (*entities.OTPChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	challenge, ok := s.challenges[otpStoreKey(channel, value)]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	clone := challenge
	return &clone, nil
}

func (s *memOTPStore) Delete(_ context.Context, channel entities.OTPChannel, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, otpStoreKey(channel, value))
	return nil
}

type captureSender struct {
	mu    sync.Mutex
	codes map[string]string
}

func (s *captureSender) SendCode(_ context.Context, _ entities.OTPChannel, destination, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.codes == nil {
		s.codes = make(map[string]string)
	}
	s.codes[destination] = code
	return nil
}

func (s *captureSender) codeFor(destination string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[destination]
}

type nopNotifier struct{}

func (nopNotifier) NotifyDecision(_ context.Context, _ string, _ entities.VerificationStatus, _ null.String) error {
	return nil
}

type testEnv struct {
	router    *gin.Engine
	repo      *memVerificationRepo
	blacklist *memBlacklistRepo
	sender    *captureSender
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMemVerificationRepo()
	blacklist := &memBlacklistRepo{}
	store := newMemOTPStore()
	sender := &captureSender{}

	engine := usecases.NewCheckEngine(blacklist, bankcheck.NewSimulatedClient(0), time.Second)
	verificationUsecase := usecases.NewVerificationUsecase(repo, engine)
	otpUsecase := usecases.NewOTPUsecase(store, sender, 10*time.Minute, 3)
	adminUsecase := usecases.NewAdminUsecase(repo, blacklist, nopNotifier{})

	verificationHandler := NewVerificationHandler(verificationUsecase)
	otpHandler := NewOTPHandler(otpUsecase)
	adminHandler := NewAdminHandler(adminUsecase, verificationUsecase)

	router := gin.New()
	v1 := router.Group("/api/v1")

	merchants := v1.Group("/merchants")
	merchants.POST("/signup", verificationHandler.Signup)
	merchants.GET("/:id/status", verificationHandler.GetStatus)
	merchants.GET("/:id/trust-score", verificationHandler.GetTrustScore)
	merchants.GET("/:id/can-list-products", verificationHandler.CanListProducts)
	merchants.POST("/:id/verify-phone", verificationHandler.VerifyPhone)

	otp := v1.Group("/otp")
	otp.POST("/send", otpHandler.Send)
	otp.POST("/verify", otpHandler.Verify)
	otp.GET("/status", otpHandler.Status)

	admin := v1.Group("/admin")
	admin.GET("/merchants/pending", adminHandler.ListPending)
	admin.POST("/merchants/:id/approve", adminHandler.Approve)
	admin.POST("/merchants/:id/reject", adminHandler.Reject)
	admin.GET("/blacklist", adminHandler.ListBlacklist)
	admin.POST("/blacklist", adminHandler.AddToBlacklist)

	return &testEnv{
		router:    router,
		repo:      repo,
		blacklist: blacklist,
		sender:    sender,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func (e *testEnv) signup(t *testing.T, payload map[string]interface{}) uuid.UUID {
	t.Helper()
	w, body := e.do(t, "POST", "/api/v1/merchants/signup", payload)
	require.Equal(t, 201, w.Code, "signup failed: %s", w.Body.String())
	merchantID, err := uuid.Parse(body["merchantId"].(string))
	require.NoError(t, err)
	return merchantID
}

func minimalSignupPayload(email string) map[string]interface{} {
	return map[string]interface{}{
		"businessName":      "Acme Traders",
		"contactPersonName": "Priya Sharma",
		"contactPhone":      "+919876543210",
		"email":             email,
	}
}

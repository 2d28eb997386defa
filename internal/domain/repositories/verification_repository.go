package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"payease.backend/internal/domain/entities"
)

// VerificationRepository defines merchant verification record operations
type VerificationRepository interface {
	Create(ctx context.Context, record *entities.MerchantVerificationRecord) error
	GetByID(ctx context.Context, merchantID uuid.UUID) (*entities.MerchantVerificationRecord, error)
	// UpdateChecks persists a new check set and trust score for a record.
	UpdateChecks(ctx context.Context, merchantID uuid.UUID, checks entities.VerificationChecks, trustScore int) error
	// ListPendingByNewest returns pending applications ordered by submission time descending.
	ListPendingByNewest(ctx context.Context) ([]*entities.MerchantVerificationRecord, error)
	CountPending(ctx context.Context) (int64, error)
	// Decide applies a terminal status exactly once. ErrNotFound when the record
	// does not exist, ErrAlreadyReviewed when it is already terminal.
	Decide(ctx context.Context, merchantID uuid.UUID, status entities.VerificationStatus, reviewerID string, reason null.String, reviewedAt time.Time) error
}

// BlacklistRepository defines deny-list operations
type BlacklistRepository interface {
	// Contains reports whether the email or the phone appears in the blacklist.
	Contains(ctx context.Context, email, phone string) (bool, error)
	Add(ctx context.Context, entry *entities.BlacklistEntry) error
	List(ctx context.Context) ([]*entities.BlacklistEntry, error)
}

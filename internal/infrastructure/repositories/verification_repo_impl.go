package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"payease.backend/internal/domain/entities"
	domainerrors "payease.backend/internal/domain/errors"
	"payease.backend/internal/infrastructure/models"
)

// VerificationRepositoryImpl implements VerificationRepository
type VerificationRepositoryImpl struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepositoryImpl {
	return &VerificationRepositoryImpl{db: db}
}

func (r *VerificationRepositoryImpl) Create(ctx context.Context, record *entities.MerchantVerificationRecord) error {
	m := r.toModel(record)
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *VerificationRepositoryImpl) GetByID(ctx context.Context, merchantID uuid.UUID) (*entities.MerchantVerificationRecord, error) {
	var m models.MerchantVerification
	if err := r.db.WithContext(ctx).Where("merchant_id = ?", merchantID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *VerificationRepositoryImpl) UpdateChecks(ctx context.Context, merchantID uuid.UUID, checks entities.VerificationChecks, trustScore int) error {
	res := r.db.WithContext(ctx).Model(&models.MerchantVerification{}).
		Where("merchant_id = ?", merchantID).
		Updates(map[string]interface{}{
			"check_email_domain":     string(checks.EmailDomain),
			"check_phone_otp":        string(checks.PhoneOTP),
			"check_penny_drop":       string(checks.PennyDrop),
			"check_id_file_uploaded": string(checks.IDFileUploaded),
			"check_blacklist":        string(checks.BlacklistCheck),
			"trust_score":            trustScore,
			"updated_at":             time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *VerificationRepositoryImpl) ListPendingByNewest(ctx context.Context) ([]*entities.MerchantVerificationRecord, error) {
	var ms []models.MerchantVerification
	if err := r.db.WithContext(ctx).
		Where("status = ?", entities.VerificationStatusPending).
		Order("submitted_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var records []*entities.MerchantVerificationRecord
	for _, m := range ms {
		model := m
		records = append(records, r.toEntity(&model))
	}
	return records, nil
}

func (r *VerificationRepositoryImpl) CountPending(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.MerchantVerification{}).
		Where("status = ?", entities.VerificationStatusPending).
		Count(&total).Error
	return total, err
}

// Decide applies a terminal decision with a single guarded UPDATE so a record
// can never be reviewed twice, even under concurrent admin requests.
func (r *VerificationRepositoryImpl) Decide(ctx context.Context, merchantID uuid.UUID, status entities.VerificationStatus, reviewerID string, reason null.String, reviewedAt time.Time) error {
	updates := map[string]interface{}{
		"status":      string(status),
		"reviewed_by": reviewerID,
		"reviewed_at": reviewedAt,
		"updated_at":  time.Now(),
	}
	if reason.Valid {
		updates["rejection_reason"] = reason.String
	}

	res := r.db.WithContext(ctx).Model(&models.MerchantVerification{}).
		Where("merchant_id = ? AND status = ?", merchantID, entities.VerificationStatusPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var total int64
		if err := r.db.WithContext(ctx).Model(&models.MerchantVerification{}).
			Where("merchant_id = ?", merchantID).
			Count(&total).Error; err != nil {
			return err
		}
		if total == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrAlreadyReviewed
	}
	return nil
}

func (r *VerificationRepositoryImpl) toModel(rec *entities.MerchantVerificationRecord) *models.MerchantVerification {
	return &models.MerchantVerification{
		MerchantID:          rec.MerchantID,
		Status:              string(rec.Status),
		BusinessName:        rec.SignupData.BusinessName,
		ContactPersonName:   rec.SignupData.ContactPersonName,
		ContactPhone:        rec.SignupData.ContactPhone,
		Email:               rec.SignupData.Email,
		BankAccountNumber:   rec.SignupData.BankAccountNumber.String,
		IFSCCode:            rec.SignupData.IFSCCode.String,
		RoutingNumber:       rec.SignupData.RoutingNumber.String,
		GSTINOrTaxID:        rec.SignupData.GSTINOrTaxID.String,
		BusinessAddress:     rec.SignupData.BusinessAddress.String,
		Website:             rec.SignupData.Website.String,
		Instagram:           rec.SignupData.Instagram.String,
		IDProofFileRef:      rec.SignupData.IDProofFileRef.String,
		CheckEmailDomain:    string(rec.Checks.EmailDomain),
		CheckPhoneOTP:       string(rec.Checks.PhoneOTP),
		CheckPennyDrop:      string(rec.Checks.PennyDrop),
		CheckIDFileUploaded: string(rec.Checks.IDFileUploaded),
		CheckBlacklist:      string(rec.Checks.BlacklistCheck),
		TrustScore:          rec.TrustScore,
		ReviewedBy:          rec.ReviewedBy.String,
		RejectionReason:     rec.RejectionReason.String,
		ReviewedAt:          rec.ReviewedAt.Ptr(),
		SubmittedAt:         rec.SubmittedAt,
	}
}

func (r *VerificationRepositoryImpl) toEntity(m *models.MerchantVerification) *entities.MerchantVerificationRecord {
	return &entities.MerchantVerificationRecord{
		MerchantID:      m.MerchantID,
		Status:          entities.VerificationStatus(m.Status),
		SubmittedAt:     m.SubmittedAt,
		ReviewedAt:      null.TimeFromPtr(m.ReviewedAt),
		ReviewedBy:      null.NewString(m.ReviewedBy, m.ReviewedBy != ""),
		RejectionReason: null.NewString(m.RejectionReason, m.RejectionReason != ""),
		Checks: entities.VerificationChecks{
			EmailDomain:    entities.CheckResult(m.CheckEmailDomain),
			PhoneOTP:       entities.CheckResult(m.CheckPhoneOTP),
			PennyDrop:      entities.CheckResult(m.CheckPennyDrop),
			IDFileUploaded: entities.CheckResult(m.CheckIDFileUploaded),
			BlacklistCheck: entities.CheckResult(m.CheckBlacklist),
		},
		TrustScore: m.TrustScore,
		SignupData: entities.MerchantSignupData{
			BusinessName:      m.BusinessName,
			ContactPersonName: m.ContactPersonName,
			ContactPhone:      m.ContactPhone,
			Email:             m.Email,
			BankAccountNumber: null.NewString(m.BankAccountNumber, m.BankAccountNumber != ""),
			IFSCCode:          null.NewString(m.IFSCCode, m.IFSCCode != ""),
			RoutingNumber:     null.NewString(m.RoutingNumber, m.RoutingNumber != ""),
			GSTINOrTaxID:      null.NewString(m.GSTINOrTaxID, m.GSTINOrTaxID != ""),
			BusinessAddress:   null.NewString(m.BusinessAddress, m.BusinessAddress != ""),
			Website:           null.NewString(m.Website, m.Website != ""),
			Instagram:         null.NewString(m.Instagram, m.Instagram != ""),
			IDProofFileRef:    null.NewString(m.IDProofFileRef, m.IDProofFileRef != ""),
		},
	}
}

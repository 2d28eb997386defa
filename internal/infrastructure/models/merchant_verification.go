package models

import (
	"time"

	"github.com/google/uuid"
)

type MerchantVerification struct {
	MerchantID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status              string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	BusinessName        string    `gorm:"type:varchar(255);not null"`
	ContactPersonName   string    `gorm:"type:varchar(255);not null"`
	ContactPhone        string    `gorm:"type:varchar(50);not null"`
	Email               string    `gorm:"type:varchar(255);not null"`
	BankAccountNumber   string    `gorm:"type:varchar(50)"`
	IFSCCode            string    `gorm:"type:varchar(20)"`
	RoutingNumber       string    `gorm:"type:varchar(20)"`
	GSTINOrTaxID        string    `gorm:"type:varchar(50)"`
	BusinessAddress     string    `gorm:"type:text"`
	Website             string    `gorm:"type:varchar(255)"`
	Instagram           string    `gorm:"type:varchar(255)"`
	IDProofFileRef      string    `gorm:"type:varchar(255)"`
	CheckEmailDomain    string    `gorm:"type:varchar(10);not null;default:'pending'"`
	CheckPhoneOTP       string    `gorm:"type:varchar(10);not null;default:'pending'"`
	CheckPennyDrop      string    `gorm:"type:varchar(10);not null;default:'pending'"`
	CheckIDFileUploaded string    `gorm:"type:varchar(10);not null;default:'pending'"`
	CheckBlacklist      string    `gorm:"type:varchar(10);not null;default:'pending'"`
	TrustScore          int       `gorm:"not null;default:0"`
	ReviewedBy          string    `gorm:"type:varchar(255)"`
	RejectionReason     string    `gorm:"type:text"`
	ReviewedAt          *time.Time
	SubmittedAt         time.Time `gorm:"not null;index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (MerchantVerification) TableName() string {
	return "merchant_verifications"
}

package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// CheckResult represents the outcome of a single automated check
type CheckResult string

const (
	CheckPassed  CheckResult = "passed"
	CheckFailed  CheckResult = "failed"
	CheckPending CheckResult = "pending"
	CheckSkipped CheckResult = "skipped"
)

// VerificationStatus represents merchant application status
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// IsTerminal reports whether the status permits no further transition.
func (s VerificationStatus) IsTerminal() bool {
	return s == VerificationStatusApproved || s == VerificationStatusRejected
}

// MerchantSignupData holds the fields a merchant provides at signup.
// Immutable once submitted.
type MerchantSignupData struct {
	BusinessName      string      `json:"businessName" binding:"required"`
	ContactPersonName string      `json:"contactPersonName" binding:"required"`
	ContactPhone      string      `json:"contactPhone" binding:"required"`
	Email             string      `json:"email" binding:"required,email"`
	BankAccountNumber null.String `json:"bankAccountNumber,omitempty"`
	IFSCCode          null.String `json:"ifscCode,omitempty"`
	RoutingNumber     null.String `json:"routingNumber,omitempty"`
	GSTINOrTaxID      null.String `json:"gstinOrTaxId,omitempty"`
	BusinessAddress   null.String `json:"businessAddress,omitempty"`
	Website           null.String `json:"website,omitempty"`
	Instagram         null.String `json:"instagram,omitempty"`
	IDProofFileRef    null.String `json:"idProofFileRef,omitempty"`
}

// BankRoutingCode returns whichever routing identifier was provided.
func (d MerchantSignupData) BankRoutingCode() null.String {
	if d.IFSCCode.Valid {
		return d.IFSCCode
	}
	return d.RoutingNumber
}

// VerificationChecks is the fixed battery of automated checks on an application
type VerificationChecks struct {
	EmailDomain    CheckResult `json:"emailDomain"`
	PhoneOTP       CheckResult `json:"phoneOtp"`
	PennyDrop      CheckResult `json:"pennyDrop"`
	IDFileUploaded CheckResult `json:"idFileUploaded"`
	BlacklistCheck CheckResult `json:"blacklistCheck"`
}

// NewPendingChecks returns the check set every fresh application starts with.
func NewPendingChecks() VerificationChecks {
	return VerificationChecks{
		EmailDomain:    CheckPending,
		PhoneOTP:       CheckPending,
		PennyDrop:      CheckPending,
		IDFileUploaded: CheckPending,
		BlacklistCheck: CheckPending,
	}
}

// MerchantVerificationRecord is the aggregate for one merchant application
type MerchantVerificationRecord struct {
	MerchantID      uuid.UUID          `json:"merchantId"`
	Status          VerificationStatus `json:"status"`
	SubmittedAt     time.Time          `json:"submittedAt"`
	ReviewedAt      null.Time          `json:"reviewedAt,omitempty"`
	ReviewedBy      null.String        `json:"reviewedBy,omitempty"`
	RejectionReason null.String        `json:"rejectionReason,omitempty"`
	Checks          VerificationChecks `json:"checks"`
	TrustScore      int                `json:"trustScore"`
	SignupData      MerchantSignupData `json:"signupData"`
}

// SignupResponse is returned from a signup submission
type SignupResponse struct {
	MerchantID uuid.UUID          `json:"merchantId"`
	Status     VerificationStatus `json:"status"`
	TrustScore int                `json:"trustScore"`
	Checks     VerificationChecks `json:"checks"`
}

// DecisionInput carries an admin approve/reject request
type DecisionInput struct {
	ReviewerID string `json:"reviewerId" binding:"required"`
	Reason     string `json:"reason,omitempty"`
}

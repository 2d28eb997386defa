package entities

import "time"

// OTPChannel represents the delivery channel for a one-time code
type OTPChannel string

const (
	OTPChannelEmail OTPChannel = "email"
	OTPChannelPhone OTPChannel = "phone"
)

// Valid reports whether the channel is one of the supported values.
func (c OTPChannel) Valid() bool {
	return c == OTPChannelEmail || c == OTPChannelPhone
}

// OTPChallenge is one outstanding code for a (channel, destination) pair.
// A resend replaces the previous challenge for the same pair.
type OTPChallenge struct {
	Type       OTPChannel `json:"type"`
	Value      string     `json:"value"`
	Code       string     `json:"code"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	IsVerified bool       `json:"isVerified"`
	Attempts   int        `json:"attempts"`
}

// OTPSendInput carries an OTP issuance request
type OTPSendInput struct {
	Type  OTPChannel `json:"type" binding:"required"`
	Value string     `json:"value" binding:"required"`
}

// OTPVerifyInput carries an OTP verification request
type OTPVerifyInput struct {
	Type  OTPChannel `json:"type" binding:"required"`
	Value string     `json:"value" binding:"required"`
	Code  string     `json:"code" binding:"required"`
}

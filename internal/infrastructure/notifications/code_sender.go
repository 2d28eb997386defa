package notifications

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"payease.backend/internal/config"
	"payease.backend/internal/domain/entities"
	"payease.backend/pkg/logger"
)

// CodeSender delivers a one-time code to its destination.
type CodeSender interface {
	SendCode(ctx context.Context, channel entities.OTPChannel, destination, code string) error
}

// TwilioCodeSender sends phone codes as SMS via Twilio. Email codes are
// logged; real email delivery belongs to the excluded notification service.
type TwilioCodeSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioCodeSender creates a Twilio-backed code sender.
func NewTwilioCodeSender(cfg config.NotificationConfig) (*TwilioCodeSender, error) {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFromNumber == "" {
		return nil, fmt.Errorf("missing Twilio credentials")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	return &TwilioCodeSender{
		client: client,
		from:   cfg.TwilioFromNumber,
	}, nil
}

func (s *TwilioCodeSender) SendCode(ctx context.Context, channel entities.OTPChannel, destination, code string) error {
	if channel != entities.OTPChannelPhone {
		logger.Info(ctx, "Sending verification code email",
			zap.String("destination", destination))
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(destination)
	params.SetBody(fmt.Sprintf("Your PayEase verification code is %s. It expires in 10 minutes.", code))

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}

// LogCodeSender logs codes instead of delivering them. Used in development
// and tests.
type LogCodeSender struct{}

func NewLogCodeSender() *LogCodeSender {
	return &LogCodeSender{}
}

func (s *LogCodeSender) SendCode(ctx context.Context, channel entities.OTPChannel, destination, code string) error {
	logger.Info(ctx, "OTP issued (development delivery)",
		zap.String("channel", string(channel)),
		zap.String("destination", destination),
		zap.String("code", code),
	)
	return nil
}

package notifications

import (
	"context"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"payease.backend/internal/domain/entities"
	"payease.backend/pkg/logger"
)

// DecisionNotifier delivers the outcome of an admin review to the merchant.
// Failures are the caller's to log and discard; a decision never rolls back
// because its notification failed.
type DecisionNotifier interface {
	NotifyDecision(ctx context.Context, email string, status entities.VerificationStatus, reason null.String) error
}

// LogNotifier records decision notifications in the log instead of sending
// real email. It stands in for the email collaborator, which is outside this
// service.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) NotifyDecision(ctx context.Context, email string, status entities.VerificationStatus, reason null.String) error {
	fields := []zap.Field{
		zap.String("email", email),
		zap.String("decision", string(status)),
	}
	if reason.Valid {
		fields = append(fields, zap.String("reason", reason.String))
	}
	logger.Info(ctx, "Sending decision email", fields...)
	return nil
}

package bankcheck

import (
	"context"

	"payease.backend/internal/config"
)

// Client verifies ownership of a bank account via a micro-deposit check.
// Implementations are best-effort single-attempt; callers bound latency with
// the request context.
type Client interface {
	VerifyAccount(ctx context.Context, accountNumber, routingCode string) (bool, error)
}

// NewClient selects the penny-drop client for the configured mode.
func NewClient(cfg config.VerificationConfig) Client {
	if cfg.PennyDropMode == "http" && cfg.PennyDropURL != "" {
		return NewHTTPClient(cfg.PennyDropURL)
	}
	return NewSimulatedClient(0)
}

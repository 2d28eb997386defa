package bankcheck

import (
	"context"
	"time"
)

// SimulatedClient is the deterministic stand-in for a real bank micro-deposit
// check: account numbers ending in an even digit verify, odd digits do not.
type SimulatedClient struct {
	delay time.Duration
}

// NewSimulatedClient creates a simulated penny-drop client. The delay mimics
// upstream latency and may be zero.
func NewSimulatedClient(delay time.Duration) *SimulatedClient {
	return &SimulatedClient{delay: delay}
}

func (c *SimulatedClient) VerifyAccount(ctx context.Context, accountNumber, routingCode string) (bool, error) {
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	if accountNumber == "" {
		return false, nil
	}
	last := accountNumber[len(accountNumber)-1]
	if last < '0' || last > '9' {
		return false, nil
	}
	return (last-'0')%2 == 0, nil
}

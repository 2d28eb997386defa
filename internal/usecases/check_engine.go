package usecases

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"payease.backend/internal/domain/entities"
	"payease.backend/internal/domain/repositories"
	"payease.backend/internal/infrastructure/bankcheck"
	"payease.backend/pkg/logger"
)

// freeMailProviders are consumer mail domains. Applications using them still
// pass the domain check, just with a lower weight than a business domain.
var freeMailProviders = map[string]struct{}{
	"gmail.com":   {},
	"yahoo.com":   {},
	"hotmail.com": {},
	"outlook.com": {},
}

const maxTrustScore = 10

// CheckEngine runs the automated verification battery against an application
// and derives its trust score.
type CheckEngine struct {
	blacklistRepo    repositories.BlacklistRepository
	bankClient       bankcheck.Client
	pennyDropTimeout time.Duration
}

// NewCheckEngine creates a new check engine
func NewCheckEngine(blacklistRepo repositories.BlacklistRepository, bankClient bankcheck.Client, pennyDropTimeout time.Duration) *CheckEngine {
	return &CheckEngine{
		blacklistRepo:    blacklistRepo,
		bankClient:       bankClient,
		pennyDropTimeout: pennyDropTimeout,
	}
}

// RunChecks evaluates every automated check on the record and recomputes the
// trust score. The phone OTP check is owned by the verification flow and is
// left untouched here.
func (e *CheckEngine) RunChecks(ctx context.Context, record *entities.MerchantVerificationRecord) error {
	data := record.SignupData

	// The domain check never fails; it only affects the score weight.
	record.Checks.EmailDomain = entities.CheckPassed

	listed, err := e.blacklistRepo.Contains(ctx, data.Email, data.ContactPhone)
	if err != nil {
		return err
	}
	if listed {
		record.Checks.BlacklistCheck = entities.CheckFailed
	} else {
		record.Checks.BlacklistCheck = entities.CheckPassed
	}

	if data.IDProofFileRef.Valid {
		record.Checks.IDFileUploaded = entities.CheckPassed
	} else {
		record.Checks.IDFileUploaded = entities.CheckFailed
	}

	record.Checks.PennyDrop = e.runPennyDrop(ctx, data)

	record.TrustScore = e.ComputeTrustScore(record)
	return nil
}

// runPennyDrop attempts the bank check when account and routing details are
// both present. Client errors and timeouts record skipped, never failed.
func (e *CheckEngine) runPennyDrop(ctx context.Context, data entities.MerchantSignupData) entities.CheckResult {
	routing := data.BankRoutingCode()
	if !data.BankAccountNumber.Valid || !routing.Valid {
		return entities.CheckSkipped
	}

	checkCtx, cancel := context.WithTimeout(ctx, e.pennyDropTimeout)
	defer cancel()

	verified, err := e.bankClient.VerifyAccount(checkCtx, data.BankAccountNumber.String, routing.String)
	if err != nil {
		logger.Warn(ctx, "Penny drop check did not complete", zap.Error(err))
		return entities.CheckSkipped
	}
	if verified {
		return entities.CheckPassed
	}
	return entities.CheckFailed
}

// ComputeTrustScore derives the score from the full current check set plus
// bonus fields. It is always recomputed from scratch so repeated check
// updates cannot double count.
func (e *CheckEngine) ComputeTrustScore(record *entities.MerchantVerificationRecord) int {
	data := record.SignupData
	score := 0

	if record.Checks.EmailDomain == entities.CheckPassed {
		score += emailDomainPoints(data.Email)
	}
	if record.Checks.BlacklistCheck == entities.CheckPassed {
		score += 2
	}
	if record.Checks.IDFileUploaded == entities.CheckPassed {
		score += 2
	}
	if record.Checks.PennyDrop == entities.CheckPassed {
		score += 2
	}
	if record.Checks.PhoneOTP == entities.CheckPassed {
		score += 2
	}

	if data.GSTINOrTaxID.Valid {
		score++
	}
	if data.Website.Valid {
		score++
	}
	if data.BusinessAddress.Valid {
		score++
	}

	if score > maxTrustScore {
		return maxTrustScore
	}
	if score < 0 {
		return 0
	}
	return score
}

func emailDomainPoints(email string) int {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return 1
	}
	domain := strings.ToLower(email[at+1:])
	if _, ok := freeMailProviders[domain]; ok {
		return 1
	}
	return 2
}

package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"payease.backend/internal/domain/repositories"
	"payease.backend/pkg/logger"
	"payease.backend/pkg/metrics"
)

// PendingReviewDigestJob periodically measures the admin review queue so the
// pending-review gauge and logs stay current between requests.
type PendingReviewDigestJob struct {
	repo     repositories.VerificationRepository
	interval time.Duration
	stop     chan struct{}
}

func NewPendingReviewDigestJob(repo repositories.VerificationRepository) *PendingReviewDigestJob {
	return &PendingReviewDigestJob{
		repo:     repo,
		interval: time.Minute,
		stop:     make(chan struct{}),
	}
}

func (j *PendingReviewDigestJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting pending review digest job")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Pending review digest job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Pending review digest job stopped")
			return
		case <-ticker.C:
			j.refresh(ctx)
		}
	}
}

func (j *PendingReviewDigestJob) Stop() {
	close(j.stop)
}

func (j *PendingReviewDigestJob) refresh(ctx context.Context) {
	total, err := j.repo.CountPending(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to count pending applications", zap.Error(err))
		return
	}

	metrics.PendingReview.Set(float64(total))
	if total > 0 {
		logger.Info(ctx, "Applications awaiting review", zap.Int64("count", total))
	}
}

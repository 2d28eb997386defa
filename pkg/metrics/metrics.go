package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes request latency
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// SignupsTotal counts merchant signup submissions
	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verification_signups_total",
		Help: "Total merchant verification submissions",
	})

	// DecisionsTotal counts admin decisions by outcome
	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verification_decisions_total",
		Help: "Total admin decisions by outcome",
	}, []string{"decision"})

	// OTPChallengesTotal counts issued OTP challenges by channel
	OTPChallengesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "otp_challenges_total",
		Help: "Total OTP challenges issued by channel",
	}, []string{"channel"})

	// PendingReview tracks applications awaiting admin review
	PendingReview = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "verification_pending_review",
		Help: "Merchant applications currently awaiting review",
	})
)

// Package metrics は Prometheus のコレクタを定義します。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "thumbnail"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	// GenerationAttemptsTotal は1回ごとの画像生成呼び出しの結果です。
	GenerationAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "attempts_total",
			Help:      "Total number of image generation calls",
		},
		[]string{"model", "status"}, // status: ok/error/no_image/timeout
	)

	GenerationBatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "batch_duration_seconds",
			Help:      "Wall time of a whole generation batch in seconds",
			Buckets:   []float64{1, 5, 10, 20, 30, 60, 120},
		},
		[]string{"model", "status"},
	)

	ReferenceCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reference",
			Name:      "cache_total",
			Help:      "Reference image cache lookups",
		},
		[]string{"result"}, // hit/miss
	)

	PaymentDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "admin",
			Name:      "payment_decisions_total",
			Help:      "Payment requests approved or rejected by admins",
		},
		[]string{"decision"},
	)
)

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamFetchErrors counts failed calls to external services by upstream name.
	UpstreamFetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mindhaven_upstream_fetch_errors_total",
		Help: "Total number of failed external service calls by upstream",
	}, []string{"upstream"})

	// ModerationFailOpen counts moderation checks that were allowed through
	// because the classification backend was unavailable.
	ModerationFailOpen = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mindhaven_moderation_fail_open_total",
		Help: "Total number of moderation checks that failed open",
	})

	// ModerationBlocked counts user submissions rejected as toxic.
	ModerationBlocked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mindhaven_moderation_blocked_total",
		Help: "Total number of submissions blocked by the moderation gate",
	}, []string{"kind"})

	// CompletionLatency records generative-language call latency.
	CompletionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mindhaven_completion_latency_seconds",
		Help:    "Generative-language completion latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// CrisisDetections counts user turns that matched crisis keywords.
	CrisisDetections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mindhaven_crisis_detections_total",
		Help: "Total number of user turns that triggered crisis resources",
	})

	// BlogScrapeDuration records listing and article scrape latency.
	BlogScrapeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mindhaven_blog_scrape_duration_seconds",
		Help:    "Blog page scrape duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"page"})
)

// TrackScrape returns a function that records scrape latency when called (e.g. defer).
func TrackScrape(page string) func() {
	start := time.Now()
	return func() {
		BlogScrapeDuration.WithLabelValues(page).Observe(time.Since(start).Seconds())
	}
}

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Document outcomes.
const (
	OutcomeProcessed   = "processed"
	OutcomeSkipped     = "skipped"
	OutcomeFailed      = "failed"
	OutcomePassthrough = "passthrough"
)

var (
	documentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kwextract",
			Name:      "documents_total",
			Help:      "Documents handled, by outcome",
		},
		[]string{"outcome"},
	)
	keywordsPerDocument = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "kwextract",
			Name:      "keywords_per_document",
			Help:      "Number of keywords returned per processed document",
			Buckets:   prometheus.LinearBuckets(0, 2, 10),
		},
	)
	extractionSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "kwextract",
			Name:      "extraction_duration_seconds",
			Help:      "Time spent extracting keywords from one document",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kwextract",
			Name:      "http_requests_total",
			Help:      "HTTP requests, by route and status code",
		},
		[]string{"route", "code"},
	)
)

func init() {
	prometheus.MustRegister(documentsTotal, keywordsPerDocument, extractionSeconds, httpRequests)
}

func ObserveDocument(outcome string) {
	documentsTotal.WithLabelValues(outcome).Inc()
}

// ObserveExtraction records a completed extraction.
func ObserveExtraction(keywords int, skipped bool, elapsed time.Duration) {
	if skipped {
		ObserveDocument(OutcomeSkipped)
		return
	}
	ObserveDocument(OutcomeProcessed)
	keywordsPerDocument.Observe(float64(keywords))
	extractionSeconds.Observe(elapsed.Seconds())
}

func ObserveRequest(route, code string) {
	httpRequests.WithLabelValues(route, code).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}

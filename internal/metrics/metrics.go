// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PhotoUploadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "copycat_photo_upload_duration_seconds",
			Help:    "Duration of the photo upload pipeline",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "copycat_upstream_requests_total",
			Help: "Calls to external services by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	TagIndexSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "copycat_tag_index_size",
			Help: "Number of tags currently in the cached tag index",
		},
	)

	TagIndexRebuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "copycat_tag_index_rebuilds_total",
			Help: "Tag index rebuilds by outcome",
		},
		[]string{"outcome"},
	)

	SearchLogRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "copycat_search_log_recorded_total",
			Help: "Keywords applied to the search tally",
		},
	)

	SearchLogPersistErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "copycat_search_log_persist_errors_total",
			Help: "Failed writes of the search tally file",
		},
	)
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}

	return OutcomeSuccess
}

func ObservePhotoUpload(start time.Time, err error) {
	PhotoUploadDuration.WithLabelValues(Outcome(err)).Observe(time.Since(start).Seconds())
}

func ObserveUpstream(source string, err error) {
	UpstreamRequests.WithLabelValues(source, Outcome(err)).Inc()
}

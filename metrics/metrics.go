// Package metrics registriert die Prometheus-Metriken des Dienstes.
package metrics

import (
	"legal-info/services"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "legal_info_requests_total",
			Help: "Total number of normalization requests by input format and HTTP status.",
		},
		[]string{"format", "status"},
	)
	ProcessingSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "legal_info_processing_seconds",
			Help:    "Time spent merging and normalizing one document.",
			Buckets: prometheus.DefBuckets,
		},
	)
	DatesNormalized = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "legal_info_dates_normalized_total",
			Help: "Total number of values rewritten by the date pass.",
		},
	)
	DurationsNormalized = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "legal_info_durations_normalized_total",
			Help: "Total number of values rewritten by the duration pass.",
		},
	)
	MergeDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "legal_info_merge_dropped_total",
			Help: "Total number of incompatible values discarded while merging rows.",
		},
	)
	RecognizerFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "legal_info_date_recognizer_failures_total",
			Help: "Total number of failed date recognizer calls.",
		},
	)
	BatchObjects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "legal_info_batch_objects_total",
			Help: "Total number of batch objects by result (processed, skipped, failed).",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		ProcessingSeconds,
		DatesNormalized,
		DurationsNormalized,
		MergeDropped,
		RecognizerFailures,
		BatchObjects,
	)
}

// ObserveReport überträgt die Zähler eines Pipeline-Laufs.
func ObserveReport(r services.Report) {
	DatesNormalized.Add(float64(r.Dates.Rewritten))
	DurationsNormalized.Add(float64(r.Durations.Rewritten))
	MergeDropped.Add(float64(r.Merge.Dropped))
	RecognizerFailures.Add(float64(r.Dates.Failures))
}

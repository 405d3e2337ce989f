// Package metrics provides Prometheus metrics for the manifest sync pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the manifest sync pipeline.
type Metrics struct {
	// Manifest outcomes
	ManifestsUploaded     *prometheus.CounterVec
	ManifestsSkippedInUse prometheus.Counter
	ManifestsRemovedEmpty prometheus.Counter

	// Error metrics
	UploadFailures prometheus.Counter
	DeleteFailures prometheus.Counter
	CycleFailures  prometheus.Counter

	// Timing metrics
	CycleDuration  prometheus.Histogram
	UploadDuration prometheus.Histogram

	// Size metrics
	ManifestBytes *prometheus.HistogramVec

	// Cycle state
	LastSyncTimestamp prometheus.Gauge
	FilesRetained     prometheus.Gauge
}

// Config holds metrics configuration.
type Config struct {
	Enabled bool
	Address string // Address for metrics HTTP server (e.g., ":9090")
}

var defaultMetrics *Metrics

// Init initializes the metrics package with global metrics.
// Call this once at startup.
func Init(namespace string) *Metrics {
	if namespace == "" {
		namespace = "manifest_sync"
	}

	m := &Metrics{
		ManifestsUploaded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "manifests_uploaded_total",
				Help:      "Total number of file_list manifests uploaded to remote storage",
			},
			[]string{"org", "stream_type"},
		),
		ManifestsSkippedInUse: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "manifests_skipped_in_use_total",
				Help:      "Total number of manifests skipped because a writer holds them",
			},
		),
		ManifestsRemovedEmpty: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "manifests_removed_empty_total",
				Help:      "Total number of zero-length manifests removed without upload",
			},
		),
		UploadFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upload_failures_total",
				Help:      "Total number of manifest upload failures",
			},
		),
		DeleteFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "delete_failures_total",
				Help:      "Total number of local delete failures after successful upload",
			},
		),
		CycleFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cycle_failures_total",
				Help:      "Total number of sync cycles that failed to scan the WAL directory",
			},
		),
		CycleDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "cycle_duration_seconds",
				Help:      "Time to complete one sync cycle",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~16s
			},
		),
		UploadDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upload_duration_seconds",
				Help:      "Time to upload a single manifest to storage",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
			},
		),
		ManifestBytes: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "manifest_bytes",
				Help:      "Compressed size of uploaded manifests in bytes",
				Buckets:   prometheus.ExponentialBuckets(256, 2, 14), // 256B to ~4MB
			},
			[]string{"org", "stream_type"},
		),
		LastSyncTimestamp: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_sync_timestamp_seconds",
				Help:      "Unix timestamp of the last completed sync cycle",
			},
		),
		FilesRetained: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "files_retained",
				Help:      "Number of manifests retained for retry after the last cycle",
			},
		),
	}

	defaultMetrics = m
	return m
}

// Get returns the global metrics instance.
// Returns nil if Init has not been called.
func Get() *Metrics {
	return defaultMetrics
}

// StartServer starts an HTTP server for Prometheus metrics scraping.
// Blocks until the server exits.
func StartServer(address string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return http.ListenAndServe(address, mux)
}

// Labels is a convenience type for metric labels.
type Labels struct {
	Org        string
	StreamType string
}

// IncManifestsUploaded increments the uploaded manifests counter.
func (m *Metrics) IncManifestsUploaded(l Labels) {
	m.ManifestsUploaded.WithLabelValues(l.Org, l.StreamType).Inc()
}

// IncSkippedInUse increments the in-use skip counter.
func (m *Metrics) IncSkippedInUse() {
	m.ManifestsSkippedInUse.Inc()
}

// IncRemovedEmpty increments the empty-manifest removal counter.
func (m *Metrics) IncRemovedEmpty() {
	m.ManifestsRemovedEmpty.Inc()
}

// IncUploadFailures increments the upload failures counter.
func (m *Metrics) IncUploadFailures() {
	m.UploadFailures.Inc()
}

// IncDeleteFailures increments the local delete failures counter.
func (m *Metrics) IncDeleteFailures() {
	m.DeleteFailures.Inc()
}

// IncCycleFailures increments the cycle failures counter.
func (m *Metrics) IncCycleFailures() {
	m.CycleFailures.Inc()
}

// ObserveCycleDuration records the duration of a sync cycle.
func (m *Metrics) ObserveCycleDuration(seconds float64) {
	m.CycleDuration.Observe(seconds)
}

// ObserveUploadDuration records the upload time for a single manifest.
func (m *Metrics) ObserveUploadDuration(seconds float64) {
	m.UploadDuration.Observe(seconds)
}

// ObserveManifestBytes records the compressed size of an uploaded manifest.
func (m *Metrics) ObserveManifestBytes(l Labels, bytes float64) {
	m.ManifestBytes.WithLabelValues(l.Org, l.StreamType).Observe(bytes)
}

// SetLastSyncTimestamp sets the completion time of the last sync cycle.
func (m *Metrics) SetLastSyncTimestamp(unixSeconds float64) {
	m.LastSyncTimestamp.Set(unixSeconds)
}

// SetFilesRetained sets the number of manifests left behind for retry.
func (m *Metrics) SetFilesRetained(count float64) {
	m.FilesRetained.Set(count)
}

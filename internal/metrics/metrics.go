// Package metrics keeps per-run counters for a threatlens invocation and
// exports them in the Prometheus text format for node_exporter's textfile
// collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "threatlens"

// Recorder owns a private registry so nothing leaks into the default one.
type Recorder struct {
	registry *prometheus.Registry

	artifactsTotal   *prometheus.CounterVec
	failuresTotal    *prometheus.CounterVec
	artifactBytes    *prometheus.CounterVec
	threatRecords    prometheus.Gauge
	categoryEfficacy *prometheus.GaugeVec
	renderSeconds    *prometheus.HistogramVec
	lastRunTimestamp prometheus.Gauge
}

func New() (*Recorder, error) {
	r := &Recorder{registry: prometheus.NewRegistry()}
	if err := r.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	return r, nil
}

func (r *Recorder) initMetrics() error {
	r.artifactsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_written_total",
			Help:      "Number of artifacts written, by kind",
		},
		[]string{"kind"},
	)

	r.failuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_failures_total",
			Help:      "Number of artifacts that failed to write, by kind",
		},
		[]string{"kind"},
	)

	r.artifactBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_bytes_total",
			Help:      "Bytes written across all artifacts, by kind",
		},
		[]string{"kind"},
	)

	r.threatRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "threat_records",
		Help:      "Threat records held by the taxonomy",
	})

	r.categoryEfficacy = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "category_efficacy_mean",
			Help:      "Mean efficacy score per threat category",
		},
		[]string{"category"},
	)

	r.renderSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent producing each artifact",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"kind"},
	)

	r.lastRunTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time the metrics were last exported",
	})

	collectors := []prometheus.Collector{
		r.artifactsTotal,
		r.failuresTotal,
		r.artifactBytes,
		r.threatRecords,
		r.categoryEfficacy,
		r.renderSeconds,
		r.lastRunTimestamp,
	}

	for _, c := range collectors {
		if err := r.registry.Register(c); err != nil {
			return err
		}
	}

	return nil
}

// ObserveArtifact records one artifact write. Failed writes count only
// toward the failure counter and the duration histogram.
func (r *Recorder) ObserveArtifact(kind string, bytes int64, d time.Duration, err error) {
	r.renderSeconds.WithLabelValues(kind).Observe(d.Seconds())
	if err != nil {
		r.failuresTotal.WithLabelValues(kind).Inc()
		return
	}
	r.artifactsTotal.WithLabelValues(kind).Inc()
	r.artifactBytes.WithLabelValues(kind).Add(float64(bytes))
}

func (r *Recorder) SetThreatRecords(n int) {
	r.threatRecords.Set(float64(n))
}

func (r *Recorder) SetCategoryEfficacy(category string, mean float64) {
	r.categoryEfficacy.WithLabelValues(category).Set(mean)
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile stamps the export time and writes every metric to path.
// The write goes through a temp file and rename, so a collector never sees
// a partial file.
func (r *Recorder) WriteTextfile(path string) error {
	r.lastRunTimestamp.SetToCurrentTime()
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "seismic_etl"

// Metrics holds the Prometheus counters, histograms, and gauges for a conversion run.
type Metrics struct {
	FilesDiscovered prometheus.Counter
	FilesConverted  prometheus.Counter
	FilesSkipped    prometheus.Counter
	FilesFailed     prometheus.Counter
	RecordsWritten  prometheus.Counter
	PublishErrors   prometheus.Counter

	SamplesPerFile         prometheus.Histogram
	FileProcessingDuration prometheus.Histogram
	RunDuration            prometheus.Gauge
	LastRunSuccess         prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates the run metrics and registers them with reg. A nil reg
// gets a fresh registry, which keeps tests from colliding on registration.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		FilesDiscovered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_discovered_total",
			Help:      "Report files found under the input root.",
		}),
		FilesConverted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_converted_total",
			Help:      "Report files written as CSV.",
		}),
		FilesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_skipped_total",
			Help:      "Report files that yielded no records.",
		}),
		FilesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_failed_total",
			Help:      "Report files that could not be read or written.",
		}),
		RecordsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_written_total",
			Help:      "CSV data rows written across all files.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Batches the record publisher failed to deliver.",
		}),
		SamplesPerFile: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "samples_per_file",
			Help:      "Acceleration samples extracted per converted file.",
			Buckets:   prometheus.ExponentialBuckets(100, 4, 8),
		}),
		FileProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_processing_duration_seconds",
			Help:      "Time to read, parse and write one report file.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last conversion run.",
		}),
		LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 when the last run finished without file failures, 0 otherwise.",
		}),
		registry: reg,
	}

	reg.MustRegister(
		m.FilesDiscovered,
		m.FilesConverted,
		m.FilesSkipped,
		m.FilesFailed,
		m.RecordsWritten,
		m.PublishErrors,
		m.SamplesPerFile,
		m.FileProcessingDuration,
		m.RunDuration,
		m.LastRunSuccess,
	)

	return m
}

// RegisterRuntimeCollectors adds the Go runtime and process collectors, for
// runs whose metrics are exported to a textfile.
func (m *Metrics) RegisterRuntimeCollectors() {
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Gatherer exposes the registry for export and tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the current metric values in text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile %q: %w", path, err)
	}
	return nil
}

package pkgmetric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Ingest holds the collectors describing upload processing.
type Ingest struct {
	accepted *prometheus.CounterVec
	finished *prometheus.CounterVec
	rows     prometheus.Counter
	duration prometheus.Histogram
}

// NewIngest creates the ingestion collectors and registers them on the
// default registry. It must be called once per process.
func NewIngest() *Ingest {
	accepted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "soc_uploads_accepted_total",
		Help: "Uploads accepted for processing, by source tool.",
	}, []string{"tool"})

	finished := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "soc_uploads_finished_total",
		Help: "Uploads that reached a terminal status, by source tool and outcome.",
	}, []string{"tool", "outcome"})

	rows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "soc_rows_parsed_total",
		Help: "Data rows parsed out of accepted uploads.",
	})

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "soc_upload_processing_seconds",
		Help:    "Time from accepted upload to terminal status.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	prometheus.MustRegister(accepted, finished, rows, duration)

	return &Ingest{
		accepted: accepted,
		finished: finished,
		rows:     rows,
		duration: duration,
	}
}

// Accepted records an upload entering the pipeline.
func (m *Ingest) Accepted(tool string) {
	m.accepted.WithLabelValues(tool).Inc()
}

// Finished records an upload reaching a terminal status.
func (m *Ingest) Finished(tool, outcome string) {
	m.finished.WithLabelValues(tool, outcome).Inc()
}

// RowsParsed adds n to the parsed-row counter.
func (m *Ingest) RowsParsed(n int64) {
	m.rows.Add(float64(n))
}

// ObserveProcessing records how long an upload took to finish.
func (m *Ingest) ObserveProcessing(d time.Duration) {
	m.duration.Observe(d.Seconds())
}

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

package usecase

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"reporting-srv/internal/model"
)

const metricsNamespace = "reporting"

type metrics struct {
	submitted  prometheus.Counter
	finished   *prometheus.CounterVec
	queueDepth prometheus.Gauge
	duration   prometheus.Histogram
}

// newMetrics registers the worker collectors on reg. A nil reg yields no-op metrics.
func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}

	m := &metrics{
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_submitted_total",
			Help:      "Report requests accepted for processing.",
		}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_finished_total",
			Help:      "Report requests that reached a terminal status.",
		}, []string{"status"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "queue_depth",
			Help:      "Report requests waiting for a worker.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "processing_duration_seconds",
			Help:      "Time from evaluation start to a terminal status.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}
	reg.MustRegister(m.submitted, m.finished, m.queueDepth, m.duration)
	return m
}

func (m *metrics) observeSubmitted() {
	if m == nil {
		return
	}
	m.submitted.Inc()
}

func (m *metrics) observeFinished(status model.ReportStatus, took time.Duration) {
	if m == nil {
		return
	}
	m.finished.WithLabelValues(string(status)).Inc()
	if took > 0 {
		m.duration.Observe(took.Seconds())
	}
}

func (m *metrics) setQueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}

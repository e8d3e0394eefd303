package changelog

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for segment IO. A nil *Metrics is
// valid everywhere one is accepted and records nothing.
type Metrics struct {
	recordsAppended *prometheus.CounterVec
	bytesAppended   prometheus.Counter
	appendErrors    prometheus.Counter
	appendDuration  prometheus.Histogram

	recordsRead prometheus.Counter
	truncations prometheus.Counter
}

// NewMetrics creates and registers the segment metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		recordsAppended: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rowlog_segment_records_appended_total",
				Help: "Total number of records appended to segments",
			},
			[]string{"op"},
		),

		bytesAppended: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rowlog_segment_bytes_appended_total",
				Help: "Total encoded bytes appended to segments",
			},
		),

		appendErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rowlog_segment_append_errors_total",
				Help: "Total number of failed appends",
			},
		),

		appendDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rowlog_segment_append_duration_seconds",
				Help:    "Append latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		recordsRead: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rowlog_segment_records_read_total",
				Help: "Total number of records decoded from segments",
			},
		),

		truncations: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rowlog_segment_truncations_total",
				Help: "Total number of truncated records encountered",
			},
		),
	}
}

// RecordAppend records one successful append of size encoded bytes.
func (m *Metrics) RecordAppend(op string, size int, duration time.Duration) {
	if m == nil {
		return
	}
	m.recordsAppended.WithLabelValues(op).Inc()
	m.bytesAppended.Add(float64(size))
	m.appendDuration.Observe(duration.Seconds())
}

// RecordAppendError records a failed append.
func (m *Metrics) RecordAppendError() {
	if m == nil {
		return
	}
	m.appendErrors.Inc()
}

// RecordRead records one decoded record.
func (m *Metrics) RecordRead() {
	if m == nil {
		return
	}
	m.recordsRead.Inc()
}

// RecordTruncation records a record cut off mid-write.
func (m *Metrics) RecordTruncation() {
	if m == nil {
		return
	}
	m.truncations.Inc()
}

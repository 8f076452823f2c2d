package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ChannelChange = "change"
	ChannelAudit  = "audit"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the court register Prometheus collectors.
type Metrics struct {
	Writes               *prometheus.CounterVec
	Notifications        *prometheus.CounterVec
	NotificationDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Writes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "court_register_writes_total",
			Help: "Committed writes by audit operation",
		}, []string{"operation"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "court_register_notifications_total",
			Help: "Published notifications by channel and outcome",
		}, []string{"channel", "outcome"}),
		NotificationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "court_register_notification_duration_seconds",
			Help:    "Time spent publishing a notification",
			Buckets: prometheus.DefBuckets,
		}, []string{"channel"}),
	}
}

// IncWrite counts one committed write. Safe on a nil receiver.
func (m *Metrics) IncWrite(operation string) {
	if m == nil {
		return
	}
	m.Writes.WithLabelValues(operation).Inc()
}

// ObservePublish records the outcome and latency of one publish. Safe on a
// nil receiver.
func (m *Metrics) ObservePublish(channel string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.Notifications.WithLabelValues(channel, outcome).Inc()
	m.NotificationDuration.WithLabelValues(channel).Observe(time.Since(started).Seconds())
}

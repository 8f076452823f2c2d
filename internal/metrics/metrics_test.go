package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObservePublish(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObservePublish(ChannelAudit, time.Now(), nil)
	m.ObservePublish(ChannelAudit, time.Now(), errors.New("down"))
	m.ObservePublish(ChannelChange, time.Now(), nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues(ChannelAudit, OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues(ChannelAudit, OutcomeFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues(ChannelChange, OutcomeSuccess)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.NotificationDuration))
}

func TestIncWrite(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncWrite("COURT_REGISTER_INSERT")
	m.IncWrite("COURT_REGISTER_INSERT")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Writes.WithLabelValues("COURT_REGISTER_INSERT")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncWrite("x")
		m.ObservePublish(ChannelAudit, time.Now(), nil)
	})
}

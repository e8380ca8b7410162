package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_BookingCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("gallipark-test", reg)

	m.IncBookingCreated("two_wheeler")
	m.IncBookingCreated("two_wheeler")
	m.IncBookingRejected("capacity_exceeded")
	m.IncBookingConflict()
	m.IncEventSurcharge()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsCreated.WithLabelValues("two_wheeler")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingRejections.WithLabelValues("capacity_exceeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingConflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventSurcharges))
}

func TestMetrics_DBQueryErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("gallipark-test", reg)

	m.ObserveDBQuery("query", 0.01, nil)
	m.ObserveDBQuery("exec", 0.02, errors.New("boom"))

	assert.Equal(t, 0.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("query")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("exec")))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingCreated("four_wheeler")
		m.IncBookingRejected("time")
		m.IncBookingConflict()
		m.IncBookingTransition("active", "ok")
		m.IncEventSurcharge()
		m.ObserveHTTPRequest("GET", "/", "200", 0.1)
		m.ObserveDBQuery("query", 0.1, nil)
		m.SetDBConnections(1, 1, 0)
	})
}

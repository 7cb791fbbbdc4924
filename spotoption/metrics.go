package spotoption

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records outbound SpotOption calls. A nil *Metrics records nothing.
type Metrics struct {
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spotoption_requests_total",
			Help: "Total number of requests sent to the SpotOption API",
		}, []string{"module", "command", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "spotoption_request_duration_seconds",
			Help:    "Duration of SpotOption API requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"module", "command"}),
	}
	if reg != nil {
		reg.MustRegister(m.requestTotal, m.requestDuration)
	}
	return m
}

// observe labels a failed call with its lower-cased error code and a
// completed one with its HTTP status class (2xx, 4xx, ...).
func (m *Metrics) observe(module, command string, status int, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := strconv.Itoa(status/100) + "xx"
	if err != nil {
		outcome = "error"
		if code := ErrorCode(err); code != "" {
			outcome = strings.ToLower(code)
		}
	}
	m.requestTotal.WithLabelValues(module, command, outcome).Inc()
	m.requestDuration.WithLabelValues(module, command).Observe(elapsed.Seconds())
}

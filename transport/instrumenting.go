package transport

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/acikit/aci/action"
	"github.com/acikit/aci/server"
)

// Metrics holds the collectors used by InstrumentingMiddleware.
type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// NewMetrics returns unregistered collectors labelled by action and error.
func NewMetrics(namespace, subsystem string) *Metrics {
	fieldKeys := []string{"action", "error"}
	return &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_count",
			Help:      "Number of actions sent.",
		}, fieldKeys),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_latency_seconds",
			Help:      "Time from sending an action until the response stream is available.",
			Buckets:   prometheus.DefBuckets,
		}, fieldKeys),
	}
}

// MustRegister registers both collectors with r.
func (m *Metrics) MustRegister(r prometheus.Registerer) {
	r.MustRegister(m.Requests, m.Latency)
}

// Middleware returns InstrumentingMiddleware(m.Requests, m.Latency).
func (m *Metrics) Middleware() Middleware {
	return InstrumentingMiddleware(m.Requests, m.Latency)
}

// InstrumentingMiddleware counts and times every Send.
func InstrumentingMiddleware(requests *prometheus.CounterVec, latency *prometheus.HistogramVec) Middleware {
	return func(next Transport) Transport {
		return TransportFunc(func(ctx context.Context, details *server.Details, params *action.Parameters) (stream ResponseStream, err error) {
			defer func(begin time.Time) {
				lvs := []string{params.Action(), strconv.FormatBool(err != nil)}
				requests.WithLabelValues(lvs...).Inc()
				latency.WithLabelValues(lvs...).Observe(time.Since(begin).Seconds())
			}(time.Now())
			return next.Send(ctx, details, params)
		})
	}
}

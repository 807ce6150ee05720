package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

const namespace = "cricket"

// Recorder owns a private registry so tests can build as many as they like.
type Recorder struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	deliveries *prometheus.CounterVec
	rejected   *prometheus.CounterVec
	webhooks   *prometheus.CounterVec
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_appended_total",
			Help:      "Deliveries appended to the ball log by extra type.",
		}, []string{"extra_type"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_rejected_total",
			Help:      "Deliveries rejected by the sequencer.",
		}, []string{"reason"}),
		webhooks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_webhooks_total",
			Help:      "Result webhook deliveries by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requests,
		r.latency,
		r.deliveries,
		r.rejected,
		r.webhooks,
	)
	return r
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) RecordRequest(route, method string, status int, d time.Duration) {
	r.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.latency.WithLabelValues(route, method).Observe(d.Seconds())
}

func (r *Recorder) DeliveryAppended(extraType string) {
	r.deliveries.WithLabelValues(extraType).Inc()
}

func (r *Recorder) DeliveryRejected(reason string) {
	r.rejected.WithLabelValues(reason).Inc()
}

func (r *Recorder) WebhookSent(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.webhooks.WithLabelValues(outcome).Inc()
}

var Module = fx.Provide(New)

func (r *Recorder) WebhookCounter(outcome string) prometheus.Counter {
	return r.webhooks.WithLabelValues(outcome)
}

func (r *Recorder) RejectedCounter(reason string) prometheus.Counter {
	return r.rejected.WithLabelValues(reason)
}

func (r *Recorder) RequestCounter(route, method string, status int) prometheus.Counter {
	return r.requests.WithLabelValues(route, method, strconv.Itoa(status))
}

// Package metrics exposes Prometheus counters for form activity: controller
// transitions, validation failures, submissions, HTTP requests and open live
// sessions.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-regform/pkg/form"
)

const namespace = "regform"

// Recorder receives form and transport events. Implementations must be safe
// for concurrent use; many sessions report into one Recorder.
type Recorder interface {
	Transition(t form.Transition)
	Request(route, method string, status int, elapsed time.Duration)
	LiveSessions(delta int)
}

// Listener adapts a Recorder into a controller listener.
func Listener(rec Recorder) form.Listener {
	if rec == nil {
		return nil
	}
	return rec.Transition
}

// Nop discards everything.
type Nop struct{}

func (Nop) Transition(form.Transition) {}

func (Nop) Request(string, string, int, time.Duration) {}

func (Nop) LiveSessions(int) {}

// Prometheus records into a dedicated registry.
type Prometheus struct {
	registry *prometheus.Registry

	transitions      *prometheus.CounterVec
	validationErrors *prometheus.CounterVec
	submissions      *prometheus.CounterVec
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	liveSessions     prometheus.Gauge
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus registers the collectors on registry, or on a fresh registry
// when nil.
func NewPrometheus(registry *prometheus.Registry) *Prometheus {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	factory := promauto.With(registry)

	return &Prometheus{
		registry: registry,
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Controller transitions by event and resulting phase",
		}, []string{"event", "phase"}),
		validationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_errors_total",
			Help:      "Field changes that left the field invalid",
		}, []string{"field"}),
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Submit attempts by outcome (accepted or blocked)",
		}, []string{"outcome"}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code",
		}, []string{"route", "method", "code"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		liveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_sessions",
			Help:      "Open websocket validation sessions",
		}),
	}
}

func (p *Prometheus) Transition(t form.Transition) {
	p.transitions.WithLabelValues(t.Event, string(t.To)).Inc()
	switch t.Event {
	case "change":
		if _, invalid := t.Result.Errors[t.Field]; invalid {
			p.validationErrors.WithLabelValues(string(t.Field)).Inc()
		}
	case "submit":
		p.submissions.WithLabelValues("accepted").Inc()
	case "submit_blocked":
		p.submissions.WithLabelValues("blocked").Inc()
	}
}

func (p *Prometheus) Request(route, method string, status int, elapsed time.Duration) {
	p.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	p.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (p *Prometheus) LiveSessions(delta int) {
	p.liveSessions.Add(float64(delta))
}

// Registry returns the registry the collectors live in.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

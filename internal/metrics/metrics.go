package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Transfer outcomes recorded by RecordTransfer
const (
	OutcomeOK           = "ok"
	OutcomeInvalid      = "invalid"
	OutcomeRejected     = "rejected"
	OutcomeFailed       = "failed"
	OutcomeBusy         = "busy"
	OutcomeUnauthorized = "unauthorized"
)

// Recorder collects metrics about auction API calls and mutations.
// A nil Recorder is valid and records nothing.
type Recorder struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	mutations *prometheus.CounterVec
	commands  *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auction_bot",
			Name:      "api_requests_total",
			Help:      "Requests sent to the auction API by endpoint and status code.",
		}, []string{"endpoint", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "auction_bot",
			Name:      "api_request_duration_seconds",
			Help:      "Latency of auction API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auction_bot",
			Name:      "mutations_total",
			Help:      "Transfer and removal attempts by action and outcome.",
		}, []string{"action", "outcome"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auction_bot",
			Name:      "commands_total",
			Help:      "Discord commands handled.",
		}, []string{"command"}),
	}
	r.registry.MustRegister(r.requests, r.latency, r.mutations, r.commands)
	return r
}

// ObserveRequest records one API call. status is 0 when no response arrived.
func (r *Recorder) ObserveRequest(endpoint string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	r.requests.WithLabelValues(endpoint, label).Inc()
	r.latency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordMutation records the outcome of a transfer or removal
func (r *Recorder) RecordMutation(action, outcome string) {
	if r == nil {
		return
	}
	r.mutations.WithLabelValues(action, outcome).Inc()
}

// RecordCommand counts a handled Discord command
func (r *Recorder) RecordCommand(command string) {
	if r == nil {
		return
	}
	r.commands.WithLabelValues(command).Inc()
}

// Handler exposes the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// MutationCounter returns the counter for one action/outcome pair
func (r *Recorder) MutationCounter(action, outcome string) prometheus.Counter {
	return r.mutations.WithLabelValues(action, outcome)
}

// CommandCounter returns the counter for one command
func (r *Recorder) CommandCounter(command string) prometheus.Counter {
	return r.commands.WithLabelValues(command)
}

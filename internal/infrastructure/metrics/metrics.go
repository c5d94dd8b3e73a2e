// Package metrics provides Prometheus metrics for interview-hub.
package metrics

import (
	"net/http"
	"strconv"

	"interview-hub/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder implements domain.OutcomeRecorder.
type Recorder struct {
	gatherer prometheus.Gatherer

	// ActionsTotal counts sign-up and sign-in outcomes.
	ActionsTotal *prometheus.CounterVec
	// ResolutionsTotal counts principal resolutions by whether a principal was found.
	ResolutionsTotal *prometheus.CounterVec
}

// NewRecorder registers the collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		gatherer: reg,
		ActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "interviewhub",
				Name:      "auth_actions_total",
				Help:      "Total number of session manager actions by result code",
			},
			[]string{"action", "code"},
		),
		ResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "interviewhub",
				Name:      "principal_resolutions_total",
				Help:      "Total number of session principal resolutions",
			},
			[]string{"resolved"},
		),
	}
}

// RecordAction records the outcome of an action.
func (r *Recorder) RecordAction(action string, code domain.ResultCode) {
	r.ActionsTotal.WithLabelValues(action, string(code)).Inc()
}

// RecordResolution records a principal resolution.
func (r *Recorder) RecordResolution(resolved bool) {
	r.ResolutionsTotal.WithLabelValues(strconv.FormatBool(resolved)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

package observability

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/termfolio/internal/logging"
	"github.com/aretw0/termfolio/pkg/domain"
)

// Metrics holds every collector termfolio exports.
type Metrics struct {
	registry *prometheus.Registry

	PhaseTransitions *prometheus.CounterVec
	Commands         *prometheus.CounterVec
	ViewVisits       *prometheus.CounterVec
	ActiveSessions   prometheus.Gauge
	RequestDuration  *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PhaseTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termfolio_phase_transitions_total",
				Help: "Total number of lifecycle phase transitions",
			},
			[]string{"to"},
		),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termfolio_commands_total",
				Help: "Total number of submitted terminal commands",
			},
			[]string{"locale", "known"},
		),
		ViewVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termfolio_view_visits_total",
				Help: "Total number of times a view was displayed",
			},
			[]string{"locale", "view"},
		),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "termfolio_sessions",
			Help: "Number of stored sessions at the last listing",
		}),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "termfolio_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
	m.registry.MustRegister(
		m.PhaseTransitions,
		m.Commands,
		m.ViewVisits,
		m.ActiveSessions,
		m.RequestDuration,
	)
	return m
}

// Registry exposes the registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Hooks returns observers that log each event and record it. m may be nil to only log.
func Hooks(logger *slog.Logger, m *Metrics) domain.Hooks {
	if logger == nil {
		logger = logging.NewNop()
	}
	return domain.Hooks{
		OnPhaseChange: func(e *domain.PhaseEvent) {
			logger.Info("phase_change", "from", e.From, "to", e.To, "locale", e.Locale)
			if m != nil {
				m.PhaseTransitions.WithLabelValues(e.To.String()).Inc()
			}
		},
		OnCommand: func(e *domain.CommandEvent) {
			logger.Info("command", "locale", e.Locale, "input", e.Input, "known", e.Known)
			if m == nil {
				return
			}
			m.Commands.WithLabelValues(string(e.Locale), strconv.FormatBool(e.Known)).Inc()
			if e.Known && e.Action.Kind == domain.ActionView {
				m.ViewVisits.WithLabelValues(string(e.Locale), string(e.Action.View)).Inc()
			}
		},
		OnNavigate: func(e *domain.NavigateEvent) {
			logger.Info("navigate", "locale", e.Locale, "view", e.View)
			if m != nil {
				m.ViewVisits.WithLabelValues(string(e.Locale), string(e.View)).Inc()
			}
		},
	}
}

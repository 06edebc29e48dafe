package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	SkillSearches      *prometheus.CounterVec
	EmployeeMatches    prometheus.Counter
	AssignmentsCreated prometheus.Counter
	AutoAssignErrors   prometheus.Counter
}

// New registers the service collectors on a private registry. Tests create
// their own instance; nothing is registered globally.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint"},
		),
		SkillSearches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skill_search_total",
				Help: "Skill searches by cache outcome",
			},
			[]string{"cache"},
		),
		EmployeeMatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "employee_match_total",
			Help: "Multi-criteria employee match requests",
		}),
		AssignmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "course_assignments_created_total",
			Help: "Course assignments inserted by auto-assignment",
		}),
		AutoAssignErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auto_assign_errors_total",
			Help: "Employees that failed during auto-assignment",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestCounter,
		m.RequestDuration,
		m.SkillSearches,
		m.EmployeeMatches,
		m.AssignmentsCreated,
		m.AutoAssignErrors,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveSearch(cacheHit bool) {
	if m == nil {
		return
	}
	label := "miss"
	if cacheHit {
		label = "hit"
	}
	m.SkillSearches.WithLabelValues(label).Inc()
}

func (m *Metrics) ObserveMatch() {
	if m == nil {
		return
	}
	m.EmployeeMatches.Inc()
}

func (m *Metrics) AddAssignmentsCreated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.AssignmentsCreated.Add(float64(n))
}

func (m *Metrics) AddAutoAssignErrors(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.AutoAssignErrors.Add(float64(n))
}

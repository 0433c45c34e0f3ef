package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// Metrics collecteurs Prometheus de l'application
type Metrics struct {
	registry *prometheus.Registry

	// Authentification
	LoginAttempts     *prometheus.CounterVec // par statut (success, failure, locked)
	InvalidTokens     prometheus.Counter
	PermissionDenials *prometheus.CounterVec // par rôle
	RateLimitHits     *prometheus.CounterVec // par endpoint

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Notifications et tâches planifiées
	EmailsSent        *prometheus.CounterVec // par type et statut
	SchedulerRuns     *prometheus.CounterVec // par job et statut
	SchedulerLastRun  *prometheus.GaugeVec   // timestamp unix du dernier passage
	FormulairesRetard prometheus.Counter     // formulaires basculés EN_RETARD par le balayage
	BackgroundTasks   *prometheus.GaugeVec   // 1 = en cours, 0 = arrêté
}

// NewMetrics enregistre les collecteurs sur un registre dédié
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		LoginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qualite_auth_login_attempts_total",
				Help: "Tentatives de connexion par statut",
			},
			[]string{"status"},
		),
		InvalidTokens: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "qualite_auth_invalid_tokens_total",
				Help: "Jetons JWT invalides, expirés ou révoqués",
			},
		),
		PermissionDenials: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qualite_auth_permission_denials_total",
				Help: "Refus d'accès par rôle",
			},
			[]string{"role"},
		),
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qualite_security_rate_limit_hits_total",
				Help: "Requêtes rejetées par la limitation de débit",
			},
			[]string{"endpoint"},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qualite_http_requests_total",
				Help: "Requêtes HTTP par méthode, route et code",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qualite_http_request_duration_seconds",
				Help:    "Latence des requêtes HTTP",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		EmailsSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qualite_emails_sent_total",
				Help: "Emails envoyés par type et statut",
			},
			[]string{"kind", "status"},
		),
		SchedulerRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qualite_scheduler_runs_total",
				Help: "Passages des tâches planifiées par job et statut",
			},
			[]string{"job", "status"},
		),
		SchedulerLastRun: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "qualite_scheduler_last_run_timestamp_seconds",
				Help: "Horodatage du dernier passage de chaque job",
			},
			[]string{"job"},
		),
		FormulairesRetard: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "qualite_formulaires_retard_total",
				Help: "Formulaires obligatoires passés EN_RETARD par le balayage",
			},
		),
		BackgroundTasks: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "qualite_background_tasks",
				Help: "État des tâches de fond (1 = en cours)",
			},
			[]string{"task"},
		),
	}
}

// Handler expose le registre au format Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordLogin(status string) {
	m.LoginAttempts.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordEmail(kind string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.EmailsSent.WithLabelValues(kind, status).Inc()
}

func (m *Metrics) RecordSchedulerRun(job string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.SchedulerRuns.WithLabelValues(job, status).Inc()
	m.SchedulerLastRun.WithLabelValues(job).Set(float64(time.Now().Unix()))
}

func (m *Metrics) SetBackgroundTaskStatus(task string, running bool) {
	value := 0.0
	if running {
		value = 1.0
	}
	m.BackgroundTasks.WithLabelValues(task).Set(value)
}

var Module = fx.Options(
	fx.Provide(NewMetrics),
)

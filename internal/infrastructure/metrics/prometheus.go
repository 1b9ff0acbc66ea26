// Package metrics adaptador Prometheus de ports.Metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Conciliacion-api/internal/application/ports"
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
)

var _ ports.Metrics = (*Prometheus)(nil)

const namespace = "conciliacion"

// Prometheus métricas del motor sobre un registry propio.
type Prometheus struct {
	registry *prometheus.Registry

	transitions   *prometheus.CounterVec
	incomplete    prometheus.Counter
	summaries     prometheus.Counter
	forecast      prometheus.Gauge
	realized      prometheus.Gauge
	pending       prometheus.Gauge
	divergent     prometheus.Gauge
	orphans       prometheus.Gauge
	issues        *prometheus.CounterVec
	telephony     prometheus.Gauge
	publishFailed prometheus.Counter
}

// New registra las métricas. registry nil crea uno nuevo con los colectores de Go y proceso.
func New(registry *prometheus.Registry) *Prometheus {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}
	m := &Prometheus{
		registry: registry,
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "invoice_status_transitions_total",
			Help: "Cambios de estado de facturas por estado destino.",
		}, []string{"to"}),
		incomplete: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "invoice_incomplete_transitions_total",
			Help: "Pasajes a PAID sin fecha de pago.",
		}),
		summaries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "summaries_computed_total",
			Help: "Resúmenes financieros calculados.",
		}),
		forecast:  gauge("forecast_monthly", "Pronóstico mensual del último resumen."),
		realized:  gauge("realized_total", "Total realizado del último resumen."),
		pending:   gauge("pending_total", "Total pendiente del último resumen."),
		divergent: gauge("divergent_invoices", "Facturas divergentes del último resumen."),
		orphans:   gauge("orphan_invoices", "Facturas huérfanas del último resumen."),
		issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "record_issues_total",
			Help: "Registros excluidos de agregaciones por tipo.",
		}, []string{"kind", "record"}),
		telephony: gauge("telephony_apportioned_total", "Total prorrateado del último cálculo."),
		publishFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "audit_publish_failures_total",
			Help: "Eventos de auditoría que no se pudieron publicar.",
		}),
	}
	registry.MustRegister(
		m.transitions, m.incomplete, m.summaries, m.forecast, m.realized, m.pending,
		m.divergent, m.orphans, m.issues, m.telephony, m.publishFailed,
	)
	return m
}

func (m *Prometheus) StatusTransition(to entity.InvoiceStatus, incomplete bool) {
	m.transitions.WithLabelValues(string(to)).Inc()
	if incomplete {
		m.incomplete.Inc()
	}
}

func (m *Prometheus) SummaryComputed(s finance.Summary) {
	m.summaries.Inc()
	m.forecast.Set(s.ForecastMonthly.InexactFloat64())
	m.realized.Set(s.RealizedTotal.InexactFloat64())
	m.pending.Set(s.PendingTotal.InexactFloat64())
	m.divergent.Set(float64(s.DivergentCount))
	m.orphans.Set(float64(len(s.Orphans)))
	m.countIssues(s.Issues)
}

func (m *Prometheus) ApportionmentComputed(a finance.Apportionment) {
	m.telephony.Set(a.Total.InexactFloat64())
	m.countIssues(a.Issues)
}

func (m *Prometheus) AuditPublishFailed() { m.publishFailed.Inc() }

func (m *Prometheus) countIssues(issues []finance.RecordIssue) {
	for _, is := range issues {
		m.issues.WithLabelValues(string(is.Kind), is.Record).Inc()
	}
}

// Registry expone el registry (tests y handlers).
func (m *Prometheus) Registry() *prometheus.Registry { return m.registry }

// Handler sirve /metrics en formato de exposición Prometheus.
func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

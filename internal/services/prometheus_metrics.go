package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	operationsTotal   *prometheus.CounterVec
	transferAmount    prometheus.Histogram
	auditAppendErrors prometheus.Counter
	accountsTotal     prometheus.Gauge
}

// NewPrometheusMetrics registers the ledger metrics on the given registerer;
// a nil registerer uses the default one.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_operations_total",
				Help: "Total number of ledger operations processed",
			},
			[]string{"operation", "status"},
		),
		transferAmount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_transfer_amount",
				Help:    "Amounts moved by completed transfers",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
		),
		auditAppendErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ledger_audit_append_errors_total",
				Help: "Total number of audit log append failures",
			},
		),
		accountsTotal: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_accounts_total",
				Help: "Current number of accounts in the store",
			},
		),
	}
}

func (m *PrometheusMetrics) RecordOperation(operation, status string) {
	m.operationsTotal.WithLabelValues(operation, status).Inc()
}

func (m *PrometheusMetrics) ObserveTransferAmount(amount float64) {
	m.transferAmount.Observe(amount)
}

func (m *PrometheusMetrics) RecordAuditAppendError() {
	m.auditAppendErrors.Inc()
}

func (m *PrometheusMetrics) SetAccountsTotal(count int) {
	m.accountsTotal.Set(float64(count))
}

package ports

import (
	"github.com/jhoicas/Conciliacion-api/internal/domain/entity"
	"github.com/jhoicas/Conciliacion-api/internal/domain/finance"
)

// Metrics puerto de observabilidad del motor. Lo implementa el adaptador Prometheus.
type Metrics interface {
	StatusTransition(to entity.InvoiceStatus, incomplete bool)
	SummaryComputed(s finance.Summary)
	ApportionmentComputed(a finance.Apportionment)
	AuditPublishFailed()
}

// NoopMetrics descarta todo (tests, CLI).
type NoopMetrics struct{}

func (NoopMetrics) StatusTransition(entity.InvoiceStatus, bool) {}
func (NoopMetrics) SummaryComputed(finance.Summary)             {}
func (NoopMetrics) ApportionmentComputed(finance.Apportionment) {}
func (NoopMetrics) AuditPublishFailed()                         {}

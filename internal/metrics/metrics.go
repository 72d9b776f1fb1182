// Package metrics exposes prometheus collectors for provisioning outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

type Metrics struct {
	ProgramsProvisioned  *prometheus.CounterVec
	DiscountsProvisioned *prometheus.CounterVec
	QuotaDeductions      *prometheus.CounterVec
}

var Module = fx.Module("metrics",
	fx.Provide(New),
)

func New() *Metrics {
	return &Metrics{
		ProgramsProvisioned: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pointrail_programs_provisioned_total",
			Help: "Program provisioning attempts by result.",
		}, []string{"result"}),
		DiscountsProvisioned: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pointrail_discounts_provisioned_total",
			Help: "Discount provisioning attempts by result.",
		}, []string{"result"}),
		QuotaDeductions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pointrail_quota_deductions_total",
			Help: "Quota deduction attempts by result.",
		}, []string{"result"}),
	}
}

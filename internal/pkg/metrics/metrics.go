package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PortalMetrics holds all Prometheus metrics for the vendor portal.
type PortalMetrics struct {
	MutationsTotal      *prometheus.CounterVec
	QuotaDenialsTotal   *prometheus.CounterVec
	CounterSyncFailures *prometheus.CounterVec
	OwnershipViolations prometheus.Counter
	VendorSignupsTotal  prometheus.Counter
}

// NewPortalMetrics initializes and registers the Prometheus metrics.
func NewPortalMetrics() *PortalMetrics {
	return &PortalMetrics{
		MutationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vendor_portal",
			Subsystem: "products",
			Name:      "mutations_total",
			Help:      "Total number of product mutations by action and outcome.",
		}, []string{"action", "outcome"}), // action: add, edit, delete; outcome: ok, error
		QuotaDenialsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vendor_portal",
			Subsystem: "quota",
			Name:      "denials_total",
			Help:      "Total number of product mutations refused by the quota gate.",
		}, []string{"action"}),
		CounterSyncFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vendor_portal",
			Subsystem: "quota",
			Name:      "counter_sync_failures_total",
			Help:      "Usage counter increments that failed after a successful mutation.",
		}, []string{"action"}),
		OwnershipViolations: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "vendor_portal",
			Subsystem: "products",
			Name:      "ownership_violations_total",
			Help:      "Mutation attempts on products owned by another vendor.",
		}),
		VendorSignupsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "vendor_portal",
			Subsystem: "vendors",
			Name:      "signups_total",
			Help:      "Total number of vendor accounts created.",
		}),
	}
}

package services

import (
	"gatepass/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var passOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gatepass_pass_operations_total",
		Help: "Successful pass lifecycle operations by resulting status",
	},
	[]string{"operation", "status"},
)

// statusLabel keeps free-text statuses from exploding label cardinality
func statusLabel(status string) string {
	switch status {
	case domain.PassStatusPending, domain.PassStatusApproved, domain.PassStatusRejected:
		return status
	default:
		return "other"
	}
}

// Package metrics defines and registers the custom Prometheus metrics for the
// user administration API. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry on
// package load via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "useradmin"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure" (bad usuario or clave) or "locked"
//     (rejected by the failed-attempt throttle)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UserMutationsTotal counts successful mutations of the usuario table.
// Label:
//   - action: "create", "update" or "change_password"
var UserMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_mutations_total",
		Help:      "Total number of successful user mutations, by action.",
	},
	[]string{"action"},
)

// AuditQueueDepth tracks the number of audit entries waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEntriesTotal counts audit entries by persistence outcome.
// Label:
//   - status: "written" or "failed"
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Total number of audit entries processed, by persistence outcome.",
	},
	[]string{"status"},
)

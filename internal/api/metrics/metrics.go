// Package metrics defines all custom Prometheus metrics for the Pressroom
// user API. It is the single source of truth for metric names, labels, and
// help strings; metrics register themselves with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pressroom"

// AuthDenialsTotal counts authorization gate denials.
// Label:
//   - action: the denied action ("list", "view", "create", "edit", "delete")
var AuthDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denials_total",
		Help:      "Total number of authorization denials, labelled by action.",
	},
	[]string{"action"},
)

// UserMutationsTotal counts successful user mutations.
// Label:
//   - kind: "create", "update" or "delete"
var UserMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_mutations_total",
		Help:      "Total number of successful user create/update/delete operations.",
	},
	[]string{"kind"},
)

// AuditWriteFailuresTotal counts audit events that could not be persisted.
var AuditWriteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_failures_total",
		Help:      "Total number of audit trail writes that failed.",
	},
)

// AuditQueueDepth tracks the number of events waiting in each audit worker
// channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", ...)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events queued per worker.",
	},
	[]string{"worker_id"},
)

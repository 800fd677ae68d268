// Package metrics exposes the service's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsCreated counts scheduled class sessions.
	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rollcall_sessions_created_total",
		Help: "Number of class sessions created.",
	})

	// CodeCollisions counts attendance-code draws rejected by the registry.
	CodeCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rollcall_code_collisions_total",
		Help: "Number of attendance code draws that collided with an active code.",
	})

	// CheckIns counts attendance writes by method and resulting status.
	CheckIns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rollcall_check_ins_total",
		Help: "Number of attendance rows written, by check-in method and status.",
	}, []string{"method", "status"})

	// CheckInFailures counts rejected code redemptions by reason.
	CheckInFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rollcall_check_in_failures_total",
		Help: "Number of rejected code redemptions, by reason.",
	}, []string{"reason"})
)

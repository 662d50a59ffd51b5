package collection

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opLoad   = "load"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roster",
			Subsystem: "collection",
			Name:      "operations_total",
			Help:      "Reconciled collection operations by outcome.",
		},
		[]string{"collection", "op", "outcome"},
	)

	dedupedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roster",
			Subsystem: "collection",
			Name:      "deduplicated_total",
			Help:      "Operations that joined an identical in-flight request.",
		},
		[]string{"collection", "op"},
	)
)

func observe(name, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	operationsTotal.WithLabelValues(name, op, outcome).Inc()
}

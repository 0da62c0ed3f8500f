package exec

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	consumeCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "graphexec",
		Subsystem: "operator",
		Name:      "consume_total",
		Help:      "number of records pulled from operators, by operator kind",
	}, []string{"kind"})

	applyDecisionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "graphexec",
		Subsystem: "apply",
		Name:      "decisions_total",
		Help:      "number of main records decided by semi apply operators, by mode and decision",
	}, []string{"mode", "decision"})

	planExecutionHistogram = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "graphexec",
		Subsystem: "plan",
		Name:      "execution_seconds",
		Help:      "time taken to execute a plan to completion",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	})
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EngineRuns counts scoring engine invocations by engine name.
var EngineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "foresight",
	Name:      "engine_runs_total",
	Help:      "Number of scoring engine runs, by engine.",
}, []string{"engine"})

// EngineScores observes the raw score produced by each engine run.
var EngineScores = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "foresight",
	Name:      "engine_score",
	Help:      "Distribution of scores produced by each engine.",
	Buckets:   prometheus.LinearBuckets(0, 10, 11),
}, []string{"engine"})

// AssessmentsPersisted counts assessments written back to the store.
var AssessmentsPersisted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "foresight",
	Name:      "assessments_persisted_total",
	Help:      "Number of assessments persisted, by kind.",
}, []string{"kind"})

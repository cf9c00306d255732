package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	flytipWatch = "flytip_watch"

	// Report metrics
	reportsSubmittedTotal = "reports_submitted_total"
	tasksFinishedTotal    = "tasks_finished_total"

	// Pipeline metrics
	stageFallbacksTotal = "stage_fallbacks_total"

	// Labels
	taskStatusLabel    = "status"
	pipelineStageLabel = "stage"
)

/**
* Metrics definition
**/
var reportsSubmittedTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: flytipWatch,
		Name:      reportsSubmittedTotal,
		Help:      "number of fly-tipping reports submitted",
	},
)

var tasksFinishedTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: flytipWatch,
		Name:      tasksFinishedTotal,
		Help:      "number of tasks that reached a terminal status",
	},
	[]string{taskStatusLabel},
)

var stageFallbacksTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: flytipWatch,
		Name:      stageFallbacksTotal,
		Help:      "number of pipeline stages that fell back to a default value",
	},
	[]string{pipelineStageLabel},
)

func IncreaseReportsSubmittedMetric() {
	reportsSubmittedTotalMetric.Inc()
}

func IncreaseTasksFinishedMetric(status string) {
	tasksFinishedTotalMetric.With(prometheus.Labels{taskStatusLabel: status}).Inc()
}

func IncreaseStageFallbackMetric(stage string) {
	stageFallbacksTotalMetric.With(prometheus.Labels{pipelineStageLabel: stage}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(reportsSubmittedTotalMetric)
	prometheus.MustRegister(tasksFinishedTotalMetric)
	prometheus.MustRegister(stageFallbacksTotalMetric)
}

package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/flytipwatch/impact-planner/internal/tasks"
)

type taskStatsCollector struct {
	store        *tasks.Store
	totalTasks   *prometheus.Desc
	tasksByState *prometheus.Desc
}

// NewTaskStatsCollector builds a collector reading live task-store statistics
// at scrape time.
func NewTaskStatsCollector(s *tasks.Store) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_tasks_%s", flytipWatch, name)
	}

	return &taskStatsCollector{
		store: s,
		totalTasks: prometheus.NewDesc(
			fqName("total"),
			"Total number of tasks tracked by this process.",
			nil,
			prometheus.Labels{},
		),
		tasksByState: prometheus.NewDesc(
			fqName("by_status"),
			"Number of tasks in each lifecycle status.",
			[]string{"status"},
			prometheus.Labels{},
		),
	}
}

func (c *taskStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalTasks
	ch <- c.tasksByState
}

// Collect implements Collector.
func (c *taskStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.store.Statistics()

	ch <- prometheus.MustNewConstMetric(c.totalTasks, prometheus.GaugeValue, float64(stats.Total))
	ch <- prometheus.MustNewConstMetric(c.tasksByState, prometheus.GaugeValue, float64(stats.Pending), string(tasks.StatusPending))
	ch <- prometheus.MustNewConstMetric(c.tasksByState, prometheus.GaugeValue, float64(stats.Processing), string(tasks.StatusProcessing))
	ch <- prometheus.MustNewConstMetric(c.tasksByState, prometheus.GaugeValue, float64(stats.Completed), string(tasks.StatusCompleted))
	ch <- prometheus.MustNewConstMetric(c.tasksByState, prometheus.GaugeValue, float64(stats.Failed), string(tasks.StatusFailed))
}

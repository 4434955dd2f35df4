package collector

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zgpcy/timer-testkit/internal/clock"
	"github.com/zgpcy/timer-testkit/internal/task"
	"github.com/zgpcy/timer-testkit/internal/version"
)

// TaskCollector implements prometheus.Collector for a simulated clock and the
// dummy tasks in a registry.
type TaskCollector struct {
	clock    *clock.Simulated
	registry *task.Registry

	// Metrics
	clockMillisMetric *prometheus.Desc
	clockUptimeMetric *prometheus.Desc
	runsMetric        *prometheus.Desc
	lastRunMetric     *prometheus.Desc
	busyTimeMetric    *prometheus.Desc
	repeatsMetric     *prometheus.Desc
	buildInfo         *prometheus.GaugeVec // Build version information
}

// NewTaskCollector creates a new TaskCollector
func NewTaskCollector(clk *clock.Simulated, registry *task.Registry) *TaskCollector {
	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "simtime_build_info",
			Help: "Build version information",
		},
		[]string{"version", "git_commit", "build_date", "go_version"},
	)

	versionInfo := version.Info()
	buildInfo.With(prometheus.Labels{
		"version":    versionInfo["version"],
		"git_commit": versionInfo["git_commit"],
		"build_date": versionInfo["build_date"],
		"go_version": versionInfo["go_version"],
	}).Set(1)

	return &TaskCollector{
		clock:    clk,
		registry: registry,
		clockMillisMetric: prometheus.NewDesc(
			"simtime_clock_millis",
			"Current simulated millis() reading (wraps at 2^32).",
			nil, nil,
		),
		clockUptimeMetric: prometheus.NewDesc(
			"simtime_clock_uptime_millis",
			"Total simulated milliseconds advanced since the clock was created.",
			nil, nil,
		),
		// Gauge rather than counter: Reset sets it back to zero
		runsMetric: prometheus.NewDesc(
			"simtime_task_runs",
			"Number of runs since construction or the last reset.",
			[]string{"task"}, nil,
		),
		lastRunMetric: prometheus.NewDesc(
			"simtime_task_last_run_millis",
			"Simulated clock reading at the start of the last run.",
			[]string{"task"}, nil,
		),
		busyTimeMetric: prometheus.NewDesc(
			"simtime_task_busy_millis",
			"Simulated milliseconds consumed by each run.",
			[]string{"task"}, nil,
		),
		repeatsMetric: prometheus.NewDesc(
			"simtime_task_repeats",
			"Continuation signal returned by each run (1 = repeat, 0 = stop).",
			[]string{"task"}, nil,
		),
		buildInfo: buildInfo,
	}
}

// Describe implements prometheus.Collector
func (c *TaskCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.clockMillisMetric
	ch <- c.clockUptimeMetric
	ch <- c.runsMetric
	ch <- c.lastRunMetric
	ch <- c.busyTimeMetric
	ch <- c.repeatsMetric
	c.buildInfo.Describe(ch)
}

// Collect implements prometheus.Collector
func (c *TaskCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(
		c.clockMillisMetric,
		prometheus.GaugeValue,
		float64(c.clock.Millis()),
	)
	ch <- prometheus.MustNewConstMetric(
		c.clockUptimeMetric,
		prometheus.GaugeValue,
		float64(c.clock.Uptime()),
	)

	c.registry.Each(func(name string, d *task.Dummy) {
		ch <- prometheus.MustNewConstMetric(c.runsMetric, prometheus.GaugeValue, float64(d.NumRuns()), name)
		ch <- prometheus.MustNewConstMetric(c.lastRunMetric, prometheus.GaugeValue, float64(d.TimeOfLastRun()), name)
		ch <- prometheus.MustNewConstMetric(c.busyTimeMetric, prometheus.GaugeValue, float64(d.BusyTime()), name)

		repeats := 0.0
		if d.Repeats() {
			repeats = 1.0
		}
		ch <- prometheus.MustNewConstMetric(c.repeatsMetric, prometheus.GaugeValue, repeats, name)
	})

	c.buildInfo.Collect(ch)
}

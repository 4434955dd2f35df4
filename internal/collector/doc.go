// Package collector exposes simulated timing state as Prometheus metrics.
//
// TaskCollector reads a simulated clock and every task in a task.Registry at
// scrape time. It holds no state of its own, so a scrape always reflects the
// current clock reading and run counts.
//
// Exported metrics:
//   - simtime_clock_millis: current 32-bit millis() reading
//   - simtime_clock_uptime_millis: monotonic total advanced
//   - simtime_task_runs{task}: runs since construction or reset
//   - simtime_task_last_run_millis{task}: clock reading at the start of the last run
//   - simtime_task_busy_millis{task}: configured busy time
//   - simtime_task_repeats{task}: continuation signal (1 or 0)
//   - simtime_build_info: build version labels
//
// Example usage:
//
//	reg := prometheus.NewRegistry()
//	reg.MustRegister(collector.NewTaskCollector(clk, tasks))
//	families, err := reg.Gather()
package collector

// Package metrics exposes Prometheus instrumentation derived from run hooks.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/botlab-edu/botlab/pkg/domain"
)

// Collector tracks run lifecycle and command throughput.
type Collector struct {
	runsStarted      prometheus.Counter
	runsFinished     *prometheus.CounterVec
	commandsExecuted *prometheus.CounterVec
	runDuration      prometheus.Histogram

	runStart time.Time
}

// NewCollector creates and registers the collectors with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		runsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "botlab_runs_started_total",
			Help: "Total number of runs started",
		}),
		runsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "botlab_runs_finished_total",
			Help: "Total number of runs finished, by outcome",
		}, []string{"outcome"}),
		commandsExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "botlab_commands_executed_total",
			Help: "Total number of leaf commands executed, by kind",
		}, []string{"kind"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "botlab_run_duration_seconds",
			Help:    "Wall-clock duration of runs",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
	}
	reg.MustRegister(c.runsStarted, c.runsFinished, c.commandsExecuted, c.runDuration)
	return c
}

// Hooks returns domain hooks that feed the collectors. Merge them with the
// renderer hooks when building the controller.
func (c *Collector) Hooks() domain.Hooks {
	return domain.Hooks{
		OnRunStateChanged: func(_ context.Context, s domain.RunStatus) {
			switch s {
			case domain.StatusRunning:
				c.runStart = time.Now()
				c.runsStarted.Inc()
			case domain.StatusCompleted, domain.StatusStopped:
				c.runsFinished.WithLabelValues(string(s)).Inc()
				if !c.runStart.IsZero() {
					c.runDuration.Observe(time.Since(c.runStart).Seconds())
				}
			}
		},
		OnCommandApplied: func(_ context.Context, ev *domain.CommandEvent) {
			c.commandsExecuted.WithLabelValues(string(ev.Kind)).Inc()
		},
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package prom exports scheduler activity as Prometheus metrics.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"code.hybscloud.com/jobs"
)

// Metrics implements jobs.Observer on top of Prometheus counters and
// an in-flight gauge. It also implements prometheus.Collector, so a
// single value registers everything:
//
//	m := prom.New()
//	prometheus.MustRegister(m)
//	s := jobs.New(jobs.WithObserver(m))
type Metrics struct {
	spawned   prometheus.Counter
	completed prometheus.Counter
	faulted   prometheus.Counter
	executed  prometheus.Counter
	inflight  prometheus.Gauge
}

// New creates a Metrics observer with the jobs_* metric family.
func New() *Metrics {
	return &Metrics{
		spawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jobs",
			Name:      "spawned_total",
			Help:      "Jobs submitted to the scheduler.",
		}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jobs",
			Name:      "completed_total",
			Help:      "Jobs whose root continuation received a value.",
		}),
		faulted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jobs",
			Name:      "faulted_total",
			Help:      "Jobs terminated by a fault reaching the terminal handler.",
		}),
		executed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jobs",
			Name:      "work_executed_total",
			Help:      "Work items executed by the worker pool.",
		}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "jobs",
			Name:      "inflight",
			Help:      "Jobs spawned but not yet completed or faulted.",
		}),
	}
}

// JobSpawned implements jobs.Observer.
func (m *Metrics) JobSpawned(jobs.Serial) {
	m.spawned.Inc()
	m.inflight.Inc()
}

// JobCompleted implements jobs.Observer.
func (m *Metrics) JobCompleted(jobs.Serial) {
	m.completed.Inc()
	m.inflight.Dec()
}

// JobFaulted implements jobs.Observer.
func (m *Metrics) JobFaulted(jobs.Serial, error) {
	m.faulted.Inc()
	m.inflight.Dec()
}

// WorkExecuted implements jobs.Observer.
func (m *Metrics) WorkExecuted() {
	m.executed.Inc()
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.spawned.Describe(ch)
	m.completed.Describe(ch)
	m.faulted.Describe(ch)
	m.executed.Describe(ch)
	m.inflight.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.spawned.Collect(ch)
	m.completed.Collect(ch)
	m.faulted.Collect(ch)
	m.executed.Collect(ch)
	m.inflight.Collect(ch)
}

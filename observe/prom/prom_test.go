// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prom_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"code.hybscloud.com/jobs"
	"code.hybscloud.com/jobs/observe/prom"
)

// gauge reads one metric family's single sample value out of reg.
func gauge(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		m := mf.GetMetric()
		if len(m) != 1 {
			t.Fatalf("%s: %d samples, want 1", name, len(m))
		}
		if c := m[0].GetCounter(); c != nil {
			return c.GetValue()
		}
		return m[0].GetGauge().GetValue()
	}
	t.Fatalf("metric family %s not gathered", name)
	return 0
}

func TestMetricsRegisterAndCount(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := prom.New()
	if err := reg.Register(m); err != nil {
		t.Fatalf("register: %v", err)
	}

	m.JobSpawned(1)
	m.JobSpawned(2)
	m.JobSpawned(3)
	m.WorkExecuted()
	m.WorkExecuted()
	m.JobCompleted(1)
	m.JobFaulted(2, nil)

	if got := gauge(t, reg, "jobs_spawned_total"); got != 3 {
		t.Fatalf("spawned: got %v, want 3", got)
	}
	if got := gauge(t, reg, "jobs_completed_total"); got != 1 {
		t.Fatalf("completed: got %v, want 1", got)
	}
	if got := gauge(t, reg, "jobs_faulted_total"); got != 1 {
		t.Fatalf("faulted: got %v, want 1", got)
	}
	if got := gauge(t, reg, "jobs_work_executed_total"); got != 2 {
		t.Fatalf("executed: got %v, want 2", got)
	}
	if got := gauge(t, reg, "jobs_inflight"); got != 1 {
		t.Fatalf("inflight: got %v, want 1", got)
	}
}

func TestMetricsObserveScheduler(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := prom.New()
	if err := reg.Register(m); err != nil {
		t.Fatalf("register: %v", err)
	}
	s := jobs.New(jobs.WithObserver(m))
	defer s.Close()

	const n = 5
	for i := range n {
		jobs.Go(s, jobs.Pure(i))
	}
	deadline := time.Now().Add(5 * time.Second)
	for gauge(t, reg, "jobs_completed_total") != n {
		if time.Now().After(deadline) {
			t.Fatalf("completed: got %v, want %d", gauge(t, reg, "jobs_completed_total"), n)
		}
		time.Sleep(time.Millisecond)
	}
	if got := gauge(t, reg, "jobs_spawned_total"); got != n {
		t.Fatalf("spawned: got %v, want %d", got, n)
	}
	if got := gauge(t, reg, "jobs_inflight"); got != 0 {
		t.Fatalf("inflight: got %v, want 0", got)
	}
}

func TestMetricsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(prom.New()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(prom.New()); err == nil {
		t.Fatal("second registration of the same family succeeded")
	}
}

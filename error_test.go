// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs_test

import (
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/jobs"
)

// TestPanicInBindDelivered: a panic in the function supplied to Bind
// is caught by the worker loop, forwarded along the failure chain,
// and reaches the root sink exactly once; the success path is never
// invoked afterwards.
func TestPanicInBindDelivered(t *testing.T) {
	fr := &faultRecord{}
	s := newScheduler(t, jobs.WithFaultSink(fr.sink))
	succeeded := &record[int]{}
	m := jobs.Bind(jobs.Pure(1), func(int) jobs.Job[int] {
		panic("boom")
	})
	jobs.Go(s, capture(succeeded, m))
	waitFor(t, func() bool { return fr.len() == 1 })
	var pe *jobs.PanicError
	if !errors.As(fr.get(0), &pe) {
		t.Fatalf("fault: got %v, want PanicError", fr.get(0))
	}
	if pe.Value != "boom" {
		t.Fatalf("panic value: got %v, want boom", pe.Value)
	}
	time.Sleep(20 * time.Millisecond)
	if succeeded.len() != 0 {
		t.Fatal("success path invoked after failure")
	}
	if fr.len() != 1 {
		t.Fatalf("fault delivered %d times, want 1", fr.len())
	}
}

// TestPanicWithErrorValue: panicking with an error delivers that
// error unwrapped.
func TestPanicWithErrorValue(t *testing.T) {
	fr := &faultRecord{}
	s := newScheduler(t, jobs.WithFaultSink(fr.sink))
	boom := errors.New("boom")
	jobs.Go(s, jobs.Thunk(func() int { panic(boom) }))
	waitFor(t, func() bool { return fr.len() == 1 })
	if got := fr.get(0); !errors.Is(got, boom) {
		t.Fatalf("fault: got %v, want %v", got, boom)
	}
}

// TestFailureForwardsThroughChain: the failure skips every pending
// bind step on its way to the terminal handler.
func TestFailureForwardsThroughChain(t *testing.T) {
	fr := &faultRecord{}
	s := newScheduler(t, jobs.WithFaultSink(fr.sink))
	boom := errors.New("boom")
	applied := &record[int]{}
	m := jobs.Raise[int](boom)
	for i := range 10 {
		m = jobs.Bind(m, func(x int) jobs.Job[int] {
			applied.add(i)
			return jobs.Pure(x)
		})
	}
	jobs.Go(s, m)
	waitFor(t, func() bool { return fr.len() == 1 })
	if !errors.Is(fr.get(0), boom) {
		t.Fatalf("fault: got %v, want %v", fr.get(0), boom)
	}
	if applied.len() != 0 {
		t.Fatalf("bind functions applied %d times after failure", applied.len())
	}
}

// TestOneFaultDoesNotAffectOthers: a failing job leaves concurrent
// jobs and the pool itself intact.
func TestOneFaultDoesNotAffectOthers(t *testing.T) {
	fr := &faultRecord{}
	s := newScheduler(t, jobs.WithFaultSink(fr.sink))
	r := &record[int]{}
	const n = 20
	for i := range n {
		if i%2 == 0 {
			jobs.Go(s, jobs.Raise[int](errors.New("planned")))
			continue
		}
		jobs.Go(s, capture(r, jobs.Pure(i)))
	}
	waitFor(t, func() bool { return fr.len() == n/2 && r.len() == n/2 })
}

// TestDefaultSinkKeepsPoolAlive: with the default sink, a fault is
// reported and the pool continues executing.
func TestDefaultSinkKeepsPoolAlive(t *testing.T) {
	s := newScheduler(t)
	jobs.Go(s, jobs.Raise[int](errors.New("reported to stderr")))
	r := &record[int]{}
	jobs.Go(s, capture(r, jobs.Pure(1)))
	waitFor(t, func() bool { return r.len() == 1 })
}

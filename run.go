// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// resultCapacity is the bounded capacity of the completion queue
// between a finishing worker and the Result consumer. A single
// outcome ever flows through it; 4 keeps the ring within one cache
// line, matching the SPSC sweet spot.
const resultCapacity = 4

// spawnWork wraps a job and its root continuation into the initial
// work item placed on the shared run queue.
type spawnWork[T any] struct {
	workLink
	m Job[T]
	k Cont[T]
}

func (w *spawnWork[T]) Do(wr *Worker) { w.m.Run(wr, w.k) }

func (w *spawnWork[T]) Fail(wr *Worker, err error) { w.k.Fail(wr, err) }

// rootCont is the terminal continuation for fire-and-forget jobs:
// the success value is discarded and a fault terminates the logical
// job by reporting to the scheduler's root sink, leaving every other
// job and worker unaffected.
type rootCont[T any] struct {
	workLink
	value  T
	sched  *Scheduler
	serial Serial
}

func (c *rootCont[T]) Arm(v T) { c.value = v }

func (c *rootCont[T]) Do(wr *Worker) {
	v := c.value
	var zero T
	c.value = zero
	c.Resume(wr, v)
}

func (c *rootCont[T]) Resume(wr *Worker, _ T) {
	if o := c.sched.obs; o != nil {
		o.JobCompleted(c.serial)
	}
}

func (c *rootCont[T]) Fail(wr *Worker, err error) {
	c.sched.fault(c.serial, err)
}

// Go spawns m on the scheduler, discarding its result. A fault
// reaches the scheduler's root sink. Panics with ErrClosed after
// Close.
func Go[T any](s *Scheduler, m Job[T]) {
	serial := s.nextSerial()
	k := &rootCont[T]{sched: s, serial: serial}
	s.submit(&spawnWork[T]{m: m, k: k}, serial)
}

// outcome carries a completed job's value or fault to the consumer.
type outcome[T any] struct {
	value T
	err   error
}

// resultCont is the terminal continuation for externally awaited
// jobs. The completing worker is the single producer and the Result
// holder the single consumer, so the hand-off rides a bounded
// lock-free SPSC queue; no goroutines or channels are involved.
type resultCont[T any] struct {
	workLink
	value  T
	q      lfq.SPSC[outcome[T]]
	slot   outcome[T]
	sched  *Scheduler
	serial Serial
}

func (c *resultCont[T]) Arm(v T) { c.value = v }

func (c *resultCont[T]) Do(wr *Worker) {
	v := c.value
	var zero T
	c.value = zero
	c.Resume(wr, v)
}

func (c *resultCont[T]) Resume(wr *Worker, v T) {
	if o := c.sched.obs; o != nil {
		o.JobCompleted(c.serial)
	}
	c.complete(outcome[T]{value: v})
}

func (c *resultCont[T]) Fail(wr *Worker, err error) {
	if o := c.sched.obs; o != nil {
		o.JobFaulted(c.serial, err)
	}
	c.complete(outcome[T]{err: err})
}

func (c *resultCont[T]) complete(o outcome[T]) {
	c.slot = o
	if err := c.q.Enqueue(&c.slot); err != nil {
		panic(&InvariantError{Op: "complete", Info: "job completed twice"})
	}
}

// Result is the consumer side of an externally awaited job. It is
// single-consumer: methods must not be called concurrently.
type Result[T any] struct {
	cont   *resultCont[T]
	serial Serial
	done   bool
	out    outcome[T]
}

// Serial returns the serial number assigned to the job at spawn time.
func (r *Result[T]) Serial() Serial { return r.serial }

// Poll reports the job's outcome without blocking. While the job is
// still running it returns iox.ErrWouldBlock; afterwards it returns
// the value, or the fault that terminated the job.
func (r *Result[T]) Poll() (T, error) {
	if r.done {
		return r.out.value, r.out.err
	}
	o, err := r.cont.q.Dequeue()
	if err != nil {
		var zero T
		return zero, err
	}
	r.done = true
	r.out = o
	return o.value, o.err
}

// Wait blocks until the job completes, backing off adaptively past
// the iox.ErrWouldBlock boundary. It does not spawn goroutines or
// create channels.
func (r *Result[T]) Wait() (T, error) {
	var bo iox.Backoff
	for {
		v, err := r.Poll()
		if err == nil || !iox.IsWouldBlock(err) {
			return v, err
		}
		bo.Wait()
	}
}

// Start submits m and returns a Result handle for polling or waiting
// from outside the pool. Panics with ErrClosed after Close.
func Start[T any](s *Scheduler, m Job[T]) *Result[T] {
	serial := s.nextSerial()
	k := &resultCont[T]{sched: s, serial: serial}
	k.q.Init(resultCapacity)
	s.submit(&spawnWork[T]{m: m, k: k}, serial)
	return &Result[T]{cont: k, serial: serial}
}

// Run submits m and blocks the calling goroutine until it completes,
// returning the value or the fault that terminated the job.
func Run[T any](s *Scheduler, m Job[T]) (T, error) {
	return Start(s, m).Wait()
}

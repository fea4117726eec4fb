// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import (
	"runtime"
	"sync"

	"code.hybscloud.com/atomix"
)

// Scheduler owns a fixed pool of workers, the shared run queue, and
// the root fault sink. Parallelism is real: workers execute work
// items concurrently; within one continuation chain execution is
// cooperative and non-preemptive.
type Scheduler struct {
	global  globalQueue
	state   atomix.Uint32
	serial  atomix.Uint32
	wg      sync.WaitGroup
	sink    func(error)
	host    HostDispatcher
	hostWr  *Worker
	obs     Observer
	workers int
}

// Option configures a Scheduler at construction.
type Option func(*Scheduler)

// WithWorkers sets the worker pool size. Default: runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(s *Scheduler) { s.workers = n }
}

// WithFaultSink installs the root fault sink: the terminal failure
// handler for faults no surrounding composition absorbed. The sink
// must be safe for concurrent use and must not panic. Default:
// report to stderr and keep running.
func WithFaultSink(sink func(error)) Option {
	return func(s *Scheduler) { s.sink = sink }
}

// WithHost installs the dispatcher of an externally owned thread as
// the target for OnHost continuations.
func WithHost(d HostDispatcher) Option {
	return func(s *Scheduler) { s.host = d }
}

// WithObserver attaches an observer for scheduler activity. Observer
// methods are called from worker goroutines and must be safe for
// concurrent use.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) { s.obs = o }
}

// New creates a scheduler and starts its worker pool.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		workers: runtime.GOMAXPROCS(0),
		sink:    defaultSink,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	s.hostWr = &Worker{sched: s}
	s.wg.Add(s.workers)
	for range s.workers {
		wr := &Worker{sched: s}
		go func() {
			defer s.wg.Done()
			wr.loop()
		}()
	}
	return s
}

// Close marks the scheduler closed and waits for the workers to
// drain their queues and exit. Close is idempotent. Jobs still
// suspended on a cell when Close is called are abandoned with their
// waiter-list entries; submitting new work after Close panics with
// ErrClosed.
func (s *Scheduler) Close() {
	s.state.CompareAndSwap(0, 1)
	s.wg.Wait()
}

func (s *Scheduler) closed() bool {
	return s.state.Load() != 0
}

// submit hands w to the shared run queue, the one synchronized entry
// point into the pool.
func (s *Scheduler) submit(w Work, serial Serial) {
	if s.closed() {
		panic(ErrClosed)
	}
	s.global.enqueue(w)
	if o := s.obs; o != nil {
		o.JobSpawned(serial)
	}
}

// fault routes err to the root sink.
func (s *Scheduler) fault(serial Serial, err error) {
	if o := s.obs; o != nil {
		o.JobFaulted(serial, err)
	}
	s.sink(err)
}

// globalQueue is the shared cross-thread hand-off point: externally
// submitted jobs and continuations reactivated from a foreign thread
// land here, because a foreign thread cannot push onto another
// worker's private stack. Intrusive FIFO under a mutex; this is the
// only mandatory synchronization in the core (the bounded SPSC
// queues used elsewhere are single-producer and do not fit a
// many-to-many run queue).
type globalQueue struct {
	mu   sync.Mutex
	head Work
	tail Work
}

func (q *globalQueue) enqueue(w Work) {
	l := w.link()
	l.enter()
	q.mu.Lock()
	if q.tail == nil {
		q.head = w
	} else {
		q.tail.link().next = w
	}
	q.tail = w
	q.mu.Unlock()
}

func (q *globalQueue) dequeue() Work {
	q.mu.Lock()
	w := q.head
	if w != nil {
		l := w.link()
		q.head = l.next
		if q.head == nil {
			q.tail = nil
		}
		l.leave()
	}
	q.mu.Unlock()
	return w
}

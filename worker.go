// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import (
	"code.hybscloud.com/iox"
)

// Worker is the per-thread execution context: the private LIFO ready
// stack, the currently installed failure handler, and the synchronous
// resume depth. It is threaded by pointer through every execution
// step and is never shared across threads; cross-thread reactivation
// goes through the scheduler's shared run queue instead.
type Worker struct {
	sched   *Scheduler
	stack   Work
	handler Handler
	depth   int
}

// push makes w runnable on this worker's private stack. Ownership of
// the item transfers into the stack; pushing an item that is already
// enqueued is fatal.
func (wr *Worker) push(w Work) {
	l := w.link()
	l.enter()
	l.next = wr.stack
	wr.stack = w
}

// pop transfers the top item out of the private stack, or returns nil.
func (wr *Worker) pop() Work {
	w := wr.stack
	if w != nil {
		l := w.link()
		wr.stack = l.next
		l.leave()
	}
	return w
}

// loop is the per-worker driver. Each iteration pops from the private
// stack, falls back to the shared run queue, and otherwise backs off
// adaptively. The loop exits once the scheduler is closed and no work
// is found. It never recurses: work items that complete further steps
// do so iteratively through the ready stack.
func (wr *Worker) loop() {
	var bo iox.Backoff
	for {
		w := wr.pop()
		if w == nil {
			w = wr.sched.global.dequeue()
		}
		if w == nil {
			if wr.sched.closed() {
				return
			}
			bo.Wait()
			continue
		}
		bo.Reset()
		wr.step(w)
	}
}

// step executes one work item with the item installed as the current
// failure handler. Any panic escaping the step is caught here, once
// per item, and delivered to that handler; the loop then continues
// with the next item rather than unwinding.
func (wr *Worker) step(w Work) {
	defer wr.trap()
	if o := wr.sched.obs; o != nil {
		o.WorkExecuted()
	}
	wr.depth = 0
	wr.handler = w
	w.Do(wr)
}

// trap is the central recovery point for user-code panics. Invariant
// violations re-panic out of faultOf and crash the worker; everything
// else becomes an error on the current failure chain.
func (wr *Worker) trap() {
	r := recover()
	if r == nil {
		return
	}
	wr.handler.Fail(wr, faultOf(r))
}

// invoke runs f as one execution step with h installed as the failure
// sink, then drains the private stack. It serves contexts that are
// driven from outside the worker loop, such as the host dispatcher.
func (wr *Worker) invoke(h Handler, f func()) {
	func() {
		defer wr.trap()
		wr.depth = 0
		wr.handler = h
		f()
	}()
	for {
		w := wr.pop()
		if w == nil {
			return
		}
		wr.step(w)
	}
}

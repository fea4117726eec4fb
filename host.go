// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

// HostDispatcher posts functions to an externally owned thread, such
// as a UI main loop. Post must execute the functions on that single
// thread, in posting order; the core never blocks inside Post.
type HostDispatcher interface {
	Post(f func())
}

// hostCont reroutes the success path onto the host thread. The host
// runs the continuation through a dedicated Worker context whose
// private stack is drained inside each posted step, so jobs resumed
// on the host observe the same execution discipline as pool workers.
//
// The failure path is forwarded on the current thread: fault routing
// stays O(1) per hop and does not depend on host availability.
type hostCont[T any] struct {
	workLink
	value T
	k     Cont[T]
}

func (c *hostCont[T]) Arm(v T) { c.value = v }

func (c *hostCont[T]) Do(wr *Worker) {
	v := c.value
	var zero T
	c.value = zero
	c.Resume(wr, v)
}

func (c *hostCont[T]) Fail(wr *Worker, err error) { c.k.Fail(wr, err) }

func (c *hostCont[T]) Resume(wr *Worker, v T) {
	s := wr.sched
	if s.host == nil {
		c.k.Fail(wr, ErrNoHost)
		return
	}
	k := c.k
	s.host.Post(func() {
		s.hostWr.invoke(k, func() {
			deliver(s.hostWr, k, v)
		})
	})
}

type hostJob[T any] struct{ m Job[T] }

func (j hostJob[T]) Run(wr *Worker, k Cont[T]) {
	j.m.Run(wr, &hostCont[T]{k: k})
}

// OnHost runs m on the worker pool but delivers its result to the
// continuation on the scheduler's host thread. The scheduler must be
// configured with WithHost; otherwise the job fails with ErrNoHost.
func OnHost[T any](m Job[T]) Job[T] {
	return hostJob[T]{m: m}
}

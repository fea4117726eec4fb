// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

// Job represents a suspendable computation producing a value of type
// T. Running a job hands it the continuation k; the job either
// invokes k before returning (the fast path, no suspension) or parks
// k on a synchronization primitive and returns. A Job value is
// immutable once constructed and may be run any number of times; each
// run is independent.
type Job[T any] interface {
	// Run executes the job on worker wr with continuation k.
	Run(wr *Worker, k Cont[T])
}

// pureJob completes immediately with a constant value.
type pureJob[T any] struct{ v T }

func (j pureJob[T]) Run(wr *Worker, k Cont[T]) { deliver(wr, k, j.v) }

// Pure lifts a value into a job that completes without suspension.
func Pure[T any](v T) Job[T] {
	return pureJob[T]{v: v}
}

// raiseJob fails immediately with a constant error.
type raiseJob[T any] struct{ err error }

func (j raiseJob[T]) Run(wr *Worker, k Cont[T]) { k.Fail(wr, j.err) }

// Raise returns a job that delivers err to the failure chain instead
// of producing a value.
func Raise[T any](err error) Job[T] {
	return raiseJob[T]{err: err}
}

// delayJob defers job construction to run time.
type delayJob[T any] struct{ f func() Job[T] }

func (j delayJob[T]) Run(wr *Worker, k Cont[T]) { j.f().Run(wr, k) }

// Delay defers the construction of a job until it is run. Use it to
// keep side effects of construction on a worker, or to break a cycle
// in a recursive job definition.
func Delay[T any](f func() Job[T]) Job[T] {
	return delayJob[T]{f: f}
}

// thunkJob evaluates a function on a worker.
type thunkJob[T any] struct{ f func() T }

func (j thunkJob[T]) Run(wr *Worker, k Cont[T]) { deliver(wr, k, j.f()) }

// Thunk returns a job that evaluates f on a worker and completes with
// its result. A panic inside f is caught by the worker loop and
// delivered to the failure chain.
func Thunk[T any](f func() T) Job[T] {
	return thunkJob[T]{f: f}
}

// bindCont is the one continuation allocated per Bind step. Its
// failure path forwards to the original continuation unchanged; its
// work path replays the armed pending value through the success path;
// its success path applies f and runs the resulting job with the
// original continuation, so completed bind steps add no wrapping.
type bindCont[T, U any] struct {
	workLink
	value T
	f     func(T) Job[U]
	k     Cont[U]
}

func (c *bindCont[T, U]) Arm(v T) { c.value = v }

func (c *bindCont[T, U]) Do(wr *Worker) {
	v := c.value
	var zero T
	c.value = zero
	c.Resume(wr, v)
}

func (c *bindCont[T, U]) Fail(wr *Worker, err error) { c.k.Fail(wr, err) }

// Resume applies f with no surrounding protective block: a panic in
// user code unwinds to the worker loop, which catches once per
// executed work item instead of once per bind application.
func (c *bindCont[T, U]) Resume(wr *Worker, v T) {
	c.f(v).Run(wr, c.k)
}

type bindJob[T, U any] struct {
	m Job[T]
	f func(T) Job[U]
}

func (j bindJob[T, U]) Run(wr *Worker, k Cont[U]) {
	j.m.Run(wr, &bindCont[T, U]{f: j.f, k: k})
}

// Bind sequences two jobs (monadic bind): it runs m, then passes the
// result to f to obtain the job that continues the computation.
func Bind[T, U any](m Job[T], f func(T) Job[U]) Job[U] {
	return bindJob[T, U]{m: m, f: f}
}

// mapCont transforms the result in place, avoiding the intermediate
// Pure job a Bind encoding would construct.
type mapCont[T, U any] struct {
	workLink
	value T
	f     func(T) U
	k     Cont[U]
}

func (c *mapCont[T, U]) Arm(v T) { c.value = v }

func (c *mapCont[T, U]) Do(wr *Worker) {
	v := c.value
	var zero T
	c.value = zero
	c.Resume(wr, v)
}

func (c *mapCont[T, U]) Fail(wr *Worker, err error) { c.k.Fail(wr, err) }

func (c *mapCont[T, U]) Resume(wr *Worker, v T) {
	deliver(wr, c.k, c.f(v))
}

type mapJob[T, U any] struct {
	m Job[T]
	f func(T) U
}

func (j mapJob[T, U]) Run(wr *Worker, k Cont[U]) {
	j.m.Run(wr, &mapCont[T, U]{f: j.f, k: k})
}

// Map applies a pure function to the result of a job.
//
// Allocation note: Map is equivalent to Bind(m, compose(Pure, f)) but
// skips the intermediate Pure job, making it the preferred choice
// when the transformation cannot suspend.
func Map[T, U any](m Job[T], f func(T) U) Job[U] {
	return mapJob[T, U]{m: m, f: f}
}

// thenCont discards the first result and runs the second job with the
// original continuation.
type thenCont[T, U any] struct {
	workLink
	value T
	n     Job[U]
	k     Cont[U]
}

func (c *thenCont[T, U]) Arm(v T) { c.value = v }

func (c *thenCont[T, U]) Do(wr *Worker) {
	var zero T
	c.value = zero
	c.Resume(wr, zero)
}

func (c *thenCont[T, U]) Fail(wr *Worker, err error) { c.k.Fail(wr, err) }

func (c *thenCont[T, U]) Resume(wr *Worker, _ T) {
	c.n.Run(wr, c.k)
}

type thenJob[T, U any] struct {
	m Job[T]
	n Job[U]
}

func (j thenJob[T, U]) Run(wr *Worker, k Cont[U]) {
	j.m.Run(wr, &thenCont[T, U]{n: j.n, k: k})
}

// Then sequences two jobs, discarding the first result.
//
// Allocation note: Then avoids the closure capture a Bind with an
// ignored argument would incur.
func Then[T, U any](m Job[T], n Job[U]) Job[U] {
	return thenJob[T, U]{m: m, n: n}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import (
	"code.hybscloud.com/kont"
)

// iterCont drives one Iterate loop. The same continuation is rewired
// to each step's job, so an iteration of any length costs a single
// allocation. Left(next) re-enters the step function; Right(result)
// delivers to the original continuation.
type iterCont[S, A any] struct {
	workLink
	value kont.Either[S, A]
	step  func(S) Job[kont.Either[S, A]]
	k     Cont[A]
}

func (c *iterCont[S, A]) Arm(v kont.Either[S, A]) { c.value = v }

func (c *iterCont[S, A]) Do(wr *Worker) {
	v := c.value
	c.value = kont.Either[S, A]{}
	c.Resume(wr, v)
}

func (c *iterCont[S, A]) Fail(wr *Worker, err error) { c.k.Fail(wr, err) }

func (c *iterCont[S, A]) Resume(wr *Worker, e kont.Either[S, A]) {
	if next, ok := e.GetLeft(); ok {
		c.step(next).Run(wr, c)
		return
	}
	result, _ := e.GetRight()
	deliver(wr, c.k, result)
}

type iterJob[S, A any] struct {
	initial S
	step    func(S) Job[kont.Either[S, A]]
}

func (j iterJob[S, A]) Run(wr *Worker, k Cont[A]) {
	c := &iterCont[S, A]{step: j.step, k: k}
	j.step(j.initial).Run(wr, c)
}

// Iterate runs step repeatedly, threading state from initial.
// step returns Left(nextState) to continue or Right(result) to finish.
// Iteration is stack-safe: long synchronous runs bounce through the
// ready stack, and the loop reuses one continuation throughout.
func Iterate[S, A any](initial S, step func(S) Job[kont.Either[S, A]]) Job[A] {
	return iterJob[S, A]{initial: initial, step: step}
}

// Continue wraps the next loop state for Iterate.
func Continue[S, A any](next S) Job[kont.Either[S, A]] {
	return Pure(kont.Left[S, A](next))
}

// Done finishes an Iterate loop with result.
func Done[S, A any](result A) Job[kont.Either[S, A]] {
	return Pure(kont.Right[S](result))
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// cellLock is a test-and-set spinlock guarding a cell's state
// transition. It is scoped strictly to the transition and never held
// across user code.
type cellLock struct {
	state atomix.Uint32
}

func (l *cellLock) acquire() {
	if l.state.CompareAndSwap(0, 1) {
		return
	}
	var bo iox.Backoff
	for !l.state.CompareAndSwap(0, 1) {
		bo.Wait()
	}
}

func (l *cellLock) release() {
	l.state.Store(0)
}

// IVar is a single-assignment blocking cell. It starts empty, accepts
// exactly one Fill, and the Empty→Full transition is one-way: the
// winning fill happens-before every read observes the value, whether
// the read arrived before or after it.
type IVar[T any] struct {
	lock    cellLock
	full    bool
	value   T
	waiters []Cont[T]
}

// NewIVar creates an empty cell with no waiters.
func NewIVar[T any]() *IVar[T] {
	return &IVar[T]{}
}

type readJob[T any] struct{ iv *IVar[T] }

func (j readJob[T]) Run(wr *Worker, k Cont[T]) {
	iv := j.iv
	iv.lock.acquire()
	if iv.full {
		v := iv.value
		iv.lock.release()
		deliver(wr, k, v)
		return
	}
	iv.waiters = append(iv.waiters, k)
	iv.lock.release()
}

// Read completes with the cell's value: immediately when the cell is
// already full, otherwise after the fill arrives. This is the one
// suspension point: the continuation is parked on the cell, in
// arrival order, and woken by the winning fill.
func (iv *IVar[T]) Read() Job[T] {
	return readJob[T]{iv: iv}
}

type fillJob[T any] struct {
	iv *IVar[T]
	v  T
}

func (j fillJob[T]) Run(wr *Worker, k Cont[Unit]) {
	iv := j.iv
	iv.lock.acquire()
	if iv.full {
		iv.lock.release()
		panic(&DoubleFillError{})
	}
	iv.full = true
	iv.value = j.v
	waiters := iv.waiters
	iv.waiters = nil
	iv.lock.release()
	// The private stack is LIFO; pushing in reverse runs the waiters
	// in arrival order.
	for i := len(waiters) - 1; i >= 0; i-- {
		waiters[i].Arm(j.v)
		wr.push(waiters[i])
	}
	deliver(wr, k, Unit{})
}

// Fill transitions the cell from Empty to Full(v) and wakes every
// parked reader with the value, then completes without suspending.
// Filling an already-full cell raises DoubleFillError.
func (iv *IVar[T]) Fill(v T) Job[Unit] {
	return fillJob[T]{iv: iv, v: v}
}

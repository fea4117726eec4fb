// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

// MVar is a reusable mutually-exclusive blocking cell. All mutating
// operations on one cell serialize into a single total order: Take on
// an empty cell parks the taker, Put on a full cell parks the putter,
// and the suspension machinery itself is the lock. Unlike IVar, the
// cell cycles between Empty and Full indefinitely.
type MVar[T any] struct {
	lock    cellLock
	full    bool
	value   T
	takers  []Cont[T]
	putters []putter[T]
	readers []Cont[T]
}

// putter is a parked Put: the continuation plus the value it is
// waiting to install.
type putter[T any] struct {
	k Cont[Unit]
	v T
}

// NewMVar creates a cell holding initial.
func NewMVar[T any](initial T) *MVar[T] {
	return &MVar[T]{full: true, value: initial}
}

// NewEmptyMVar creates an empty cell.
func NewEmptyMVar[T any]() *MVar[T] {
	return &MVar[T]{}
}

// popTaker removes the first parked taker in arrival order.
func (mv *MVar[T]) popTaker() Cont[T] {
	t := mv.takers[0]
	mv.takers[0] = nil
	mv.takers = mv.takers[1:]
	return t
}

// popPutter removes the first parked putter in arrival order.
func (mv *MVar[T]) popPutter() putter[T] {
	p := mv.putters[0]
	mv.putters[0] = putter[T]{}
	mv.putters = mv.putters[1:]
	return p
}

// drainReaders detaches the parked Tap continuations; they are woken
// with the value that arrived.
func (mv *MVar[T]) drainReaders() []Cont[T] {
	rs := mv.readers
	mv.readers = nil
	return rs
}

func wakeReaders[T any](wr *Worker, rs []Cont[T], v T) {
	for i := len(rs) - 1; i >= 0; i-- {
		rs[i].Arm(v)
		wr.push(rs[i])
	}
}

type takeJob[T any] struct{ mv *MVar[T] }

func (j takeJob[T]) Run(wr *Worker, k Cont[T]) {
	mv := j.mv
	mv.lock.acquire()
	if !mv.full {
		mv.takers = append(mv.takers, k)
		mv.lock.release()
		return
	}
	v := mv.value
	var zero T
	mv.value = zero
	mv.full = false
	if len(mv.putters) == 0 {
		mv.lock.release()
		deliver(wr, k, v)
		return
	}
	// A parked putter refills the vacated cell before anyone else
	// can observe it empty.
	p := mv.popPutter()
	mv.value = p.v
	mv.full = true
	rs := mv.drainReaders()
	mv.lock.release()
	wakeReaders(wr, rs, p.v)
	p.k.Arm(Unit{})
	wr.push(p.k)
	deliver(wr, k, v)
}

// Take transitions the cell from Full to Empty and completes with the
// value; on an empty cell it parks the taker until a put arrives.
func (mv *MVar[T]) Take() Job[T] {
	return takeJob[T]{mv: mv}
}

type putJob[T any] struct {
	mv *MVar[T]
	v  T
}

func (j putJob[T]) Run(wr *Worker, k Cont[Unit]) {
	mv := j.mv
	mv.lock.acquire()
	if mv.full {
		mv.putters = append(mv.putters, putter[T]{k: k, v: j.v})
		mv.lock.release()
		return
	}
	if len(mv.takers) > 0 {
		// Direct hand-off: the value goes straight to the first
		// parked taker and the cell stays empty.
		t := mv.popTaker()
		rs := mv.drainReaders()
		mv.lock.release()
		wakeReaders(wr, rs, j.v)
		t.Arm(j.v)
		wr.push(t)
		deliver(wr, k, Unit{})
		return
	}
	mv.value = j.v
	mv.full = true
	rs := mv.drainReaders()
	mv.lock.release()
	wakeReaders(wr, rs, j.v)
	deliver(wr, k, Unit{})
}

// Put transitions the cell from Empty to Full(v), handing the value
// directly to the first parked taker if one is waiting; on a full
// cell it parks the putter until a take vacates the cell.
func (mv *MVar[T]) Put(v T) Job[Unit] {
	return putJob[T]{mv: mv, v: v}
}

// Update takes the current value, applies f outside the cell lock,
// and puts the result back. While the update is in flight the cell is
// empty, so every competing Take and Update parks behind it: a set of
// concurrent updates with pure functions applies as some sequential
// composition. A raw Put racing an Update can slip into the vacated
// cell; keep mutation on Take/Update when that order matters.
func (mv *MVar[T]) Update(f func(T) T) Job[Unit] {
	return Bind(mv.Take(), func(v T) Job[Unit] {
		return mv.Put(f(v))
	})
}

type tapJob[T any] struct{ mv *MVar[T] }

func (j tapJob[T]) Run(wr *Worker, k Cont[T]) {
	mv := j.mv
	mv.lock.acquire()
	if mv.full {
		v := mv.value
		mv.lock.release()
		deliver(wr, k, v)
		return
	}
	mv.readers = append(mv.readers, k)
	mv.lock.release()
}

// Tap observes the cell's value without consuming it: immediately
// when the cell is full, otherwise when the next value arrives. Tap
// does not participate in the Take/Put mutual-exclusion order; it is
// the watch-and-react primitive for consumers layered above the cell.
func (mv *MVar[T]) Tap() Job[T] {
	return tapJob[T]{mv: mv}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs_test

import (
	"testing"

	"code.hybscloud.com/kont"

	"code.hybscloud.com/jobs"
)

func TestLiftExprPure(t *testing.T) {
	s := newScheduler(t)
	expr := kont.ExprBind(kont.ExprReturn(6), func(x int) kont.Expr[int] {
		return kont.ExprReturn(x * 7)
	})
	r := &record[int]{}
	jobs.Go(s, capture(r, jobs.LiftExpr(expr)))
	waitFor(t, func() bool { return r.len() == 1 })
	if got := r.get(0); got != 42 {
		t.Fatalf("lift expr: got %d, want 42", got)
	}
}

// ask is a test effect operation answered by the handler.
type ask struct {
	kont.Phantom[int]
}

func TestLiftHandled(t *testing.T) {
	skipRace(t)
	s := newScheduler(t)
	expr := kont.Reify(kont.Bind(kont.Perform(ask{}), func(x int) kont.Eff[int] {
		return kont.Pure(x * 2)
	}))
	h := kont.HandleFunc[int](func(op kont.Operation) (kont.Resumed, bool) {
		if _, ok := op.(ask); ok {
			return 21, true
		}
		panic("unhandled effect in test handler")
	})
	got := mustRun(t, s, jobs.LiftHandled(expr, h))
	if got != 42 {
		t.Fatalf("lift handled: got %d, want 42", got)
	}
}

// TestLiftExprUnhandledEffectFaults: an effectful expression behind
// LiftExpr panics inside kont and the fault reaches the root sink.
func TestLiftExprUnhandledEffectFaults(t *testing.T) {
	fr := &faultRecord{}
	s := newScheduler(t, jobs.WithFaultSink(fr.sink))
	expr := kont.Reify(kont.Bind(kont.Perform(ask{}), func(x int) kont.Eff[int] {
		return kont.Pure(x)
	}))
	jobs.Go(s, jobs.LiftExpr(expr))
	waitFor(t, func() bool { return fr.len() == 1 })
}

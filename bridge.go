// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import (
	"code.hybscloud.com/kont"
)

// LiftExpr adapts a pure defunctionalized kont computation into a
// Job. Evaluation happens on a worker via kont.RunPure, which
// processes frames iteratively, so arbitrarily deep expressions run
// in constant Go stack. The expression must not contain effect
// frames; an unhandled effect panics inside the step and reaches the
// failure chain.
func LiftExpr[A any](m kont.Expr[A]) Job[A] {
	return Thunk(func() A {
		return kont.RunPure(m)
	})
}

// LiftHandled adapts an effectful kont computation together with its
// handler into a Job. The handler's synchronous trampoline runs to
// completion on a worker; effects that suspend on pool primitives
// belong in Jobs directly, not behind this bridge.
func LiftHandled[H kont.Handler[H, R], R any](m kont.Expr[R], h H) Job[R] {
	return Thunk(func() R {
		return kont.HandleExpr(m, h)
	})
}

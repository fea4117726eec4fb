// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

// Unit is the result type of jobs that produce no value.
type Unit = struct{}

// Cont is the fused continuation: schedulable [Work], failure
// [Handler], and success receiver in a single allocation. A suspended
// job becomes runnable again by arming its continuation with the
// pending value and pushing that same object onto a ready stack; no
// second allocation, no separate resumption interface.
//
// A continuation is resumed at most once per arming cycle.
type Cont[T any] interface {
	Work
	// Resume invokes the success path with v.
	Resume(wr *Worker, v T)
	// Arm stores v as the pending value so that a later Do replays
	// it through Resume. Arming and enqueuing form one logical step:
	// the continuation must not already be on a ready stack.
	Arm(v T)
}

// resumeDepthLimit bounds synchronous resume nesting. Beyond it,
// deliver re-arms the continuation and bounces it off the local ready
// stack, so bind chains of any length run in constant Go stack.
const resumeDepthLimit = 512

// deliver resumes k with v on worker wr. Once the synchronous depth
// limit is reached the continuation is armed and pushed instead of
// called: the ready stack is the trampoline, and the bounce reuses k
// itself, keeping the resumption path allocation-free.
func deliver[T any](wr *Worker, k Cont[T], v T) {
	if wr.depth >= resumeDepthLimit {
		k.Arm(v)
		wr.push(k)
		return
	}
	wr.depth++
	k.Resume(wr, v)
	wr.depth--
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import "code.hybscloud.com/atomix"

// Handler is the failure sink capability. Handlers form a forwarding
// chain: installing a handler is O(1) (construct a continuation that
// forwards to the previous one), and delivering a failure walks the
// chain once, so the non-failing path never pays for depth.
type Handler interface {
	// Fail delivers err to this handler on worker wr.
	Fail(wr *Worker, err error)
}

// Work is a schedulable unit on a ready stack. Every Work is also a
// Handler: the item being executed is the current failure sink, so a
// suspended computation carries its resumption and its fault routing
// in one object.
type Work interface {
	Handler
	link() *workLink
	// Do executes one step on worker wr. It may push further Work
	// onto wr's ready stack but must not re-enter the worker loop.
	Do(wr *Worker)
}

// workLink is embedded by every Work implementation. It holds the
// intrusive ready-stack link and the single-shot enqueue guard:
// being on a stack and being executed are mutually exclusive states.
type workLink struct {
	next   Work
	queued atomix.Uint32
}

func (l *workLink) link() *workLink { return l }

// enter marks the link as enqueued. A work item already on a ready
// stack corrupts the intrusive chain, so a double enqueue is fatal.
func (l *workLink) enter() {
	if l.queued.Add(1) != 1 {
		panic(&InvariantError{Op: "enqueue", Info: "work item already on a ready stack"})
	}
}

// leave releases the link once the item has been popped; ownership
// transfers to the executing worker.
func (l *workLink) leave() {
	l.next = nil
	l.queued.Store(0)
}

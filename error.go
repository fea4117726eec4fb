// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

import (
	"errors"
	"fmt"
	"os"
)

// ErrClosed is raised by submission entry points after Close.
// Submitting to a closed scheduler is a programming error, so the
// entry points panic with this value rather than returning it.
var ErrClosed = errors.New("jobs: scheduler is closed")

// ErrNoHost is delivered to the failure chain when OnHost runs on a
// scheduler that has no HostDispatcher configured.
var ErrNoHost = errors.New("jobs: no host dispatcher configured")

// DoubleFillError reports a second Fill of a single-assignment cell.
// It signals a contract violation at the filling call site: two
// producers raced, and ignoring the loser would hide the race from
// every reader that already observed the winning value.
//
// The raise is synchronous (a panic inside the fill step); delivery
// to the failure chain uses the worker loop's central recovery, so a
// losing producer observes the error through its job's outcome.
type DoubleFillError struct{}

func (*DoubleFillError) Error() string { return "jobs: IVar filled twice" }

// InvariantError reports scheduler-state corruption: a work item
// enqueued onto two ready stacks, or resumed after its single shot.
// It is fatal. It is never routed through the failure chain, because
// a corrupted ready stack means the forwarding machinery itself
// cannot be trusted; the panic propagates out of the worker.
type InvariantError struct {
	Op   string
	Info string
}

func (e *InvariantError) Error() string { return "jobs: " + e.Op + ": " + e.Info }

// PanicError wraps a non-error value recovered from a panicking job.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("jobs: job panicked: %v", e.Value) }

// faultOf converts a recovered panic value into the error delivered
// to the current failure handler. Invariant violations are re-raised
// instead of delivered.
func faultOf(r any) error {
	switch v := r.(type) {
	case *InvariantError:
		panic(v)
	case error:
		return v
	default:
		return &PanicError{Value: v}
	}
}

// defaultSink is the root fault sink used when WithFaultSink is not
// given: report the fault where an operator will see it and keep the
// scheduler running. One failing job never takes down the pool.
func defaultSink(err error) {
	fmt.Fprintf(os.Stderr, "jobs: unhandled job fault: %v\n", err)
}

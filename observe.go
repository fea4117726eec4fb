// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jobs

// Observer receives scheduler activity callbacks. All methods are
// invoked from worker goroutines, possibly concurrently; implementors
// must be safe for concurrent use and should return quickly, since
// WorkExecuted sits on the execution hot path.
//
// The observe/prom subpackage provides a Prometheus-backed
// implementation.
type Observer interface {
	// JobSpawned is called when a job is submitted to the pool.
	JobSpawned(serial Serial)
	// JobCompleted is called when a job's root continuation receives
	// the success value.
	JobCompleted(serial Serial)
	// JobFaulted is called when a fault reaches a job's terminal
	// handler, before the root sink (for Go) or the Result (for
	// Start/Run) observes it.
	JobFaulted(serial Serial, err error)
	// WorkExecuted is called once per work item the pool executes.
	WorkExecuted()
}

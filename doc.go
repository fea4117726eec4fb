// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package jobs provides a lightweight-thread concurrency runtime:
// large numbers of cooperatively scheduled jobs that suspend on
// blocking cells without holding an OS thread each, and resume with
// minimal allocation.
//
// # Architecture
//
//   - Scheduling: a fixed pool of workers, each owning a private LIFO
//     ready stack; cross-thread reactivation goes through one shared
//     run queue. [New] starts the pool, [Go] spawns, [Start]/[Run]
//     await from outside.
//   - Execution model: [Cont] fuses schedulable work, failure handler,
//     and success receiver into one object, so a suspended job is
//     resumed by arming and re-pushing that object — no allocation on
//     the resumption path.
//   - Stack safety: deep synchronous bind chains bounce through the
//     ready stack once a depth limit is reached; the worker loop never
//     recurses.
//   - Results: completed jobs hand their outcome to the awaiting
//     goroutine over a bounded lock-free SPSC queue from
//     [code.hybscloud.com/lfq]; [Result.Poll] returns
//     [code.hybscloud.com/iox.ErrWouldBlock] while pending.
//
// # Core Operations
//
// Minimal monad operations:
//
//   - [Pure]: lift a value into a job
//   - [Bind]: sequence two jobs
//
// Derived operations:
//
//   - [Map]: transform a result — equivalent to Bind(m, func(a) Pure(f(a)))
//   - [Then]: sequence, discarding the first result
//   - [Delay], [Thunk], [Raise], [Iterate]
//
// # Blocking Cells
//
//   - [IVar]: single-assignment cell. Read parks until the one Fill
//     arrives; a second Fill raises [DoubleFillError].
//   - [MVar]: reusable mutually-exclusive cell. Take/Put serialize all
//     mutation into one total order per cell; [MVar.Update] is the
//     read-modify-write built from them; [MVar.Tap] observes without
//     consuming.
//
// # Error Handling
//
// A panic escaping user code is caught centrally by the worker loop,
// once per executed work item, and forwarded along the continuation's
// failure chain — O(1) per hop, paid only when a failure occurs. The
// terminal handler reports through the scheduler's configurable root
// sink; one failing job never affects another.
//
// # Integration
//
//   - Host threads: [WithHost] registers an externally owned thread's
//     dispatch mechanism; [OnHost] reroutes a job's continuation onto
//     that thread.
//   - Observability: [WithObserver] attaches activity callbacks; the
//     observe/prom subpackage exports them as Prometheus metrics.
//   - kont: [LiftExpr] and [LiftHandled] evaluate defunctionalized
//     [code.hybscloud.com/kont] computations as jobs.
//
// # Example
//
//	s := jobs.New()
//	defer s.Close()
//	iv := jobs.NewIVar[int]()
//	jobs.Go(s, jobs.Bind(iv.Read(), func(v int) jobs.Job[jobs.Unit] {
//		return jobs.Thunk(func() jobs.Unit { fmt.Println(v); return jobs.Unit{} })
//	}))
//	_, _ = jobs.Run(s, iv.Fill(42))
package jobs

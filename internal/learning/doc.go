// Package learning adapts detection behavior from user feedback.
//
// A Service owns three pieces of process-lifetime state: an append-only
// feedback history, a per-bias-type weight map bounded to [0.1, 2.0],
// and lazily created per-user sensitivity profiles. All state is guarded
// by a single mutex, so any number of goroutines may submit feedback
// concurrently. Nothing is persisted; weights and profiles reset with
// the process.
package learning

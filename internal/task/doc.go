// Package task provides the bounded-concurrency runner and retry
// primitives the batch exporter is built on.
//
// # Runner
//
// Run executes independent units of work with a fixed concurrency ceiling
// and optional per-lane pacing:
//
//	err := task.Run(ctx, ids, 3, 500*time.Millisecond, worker)
//
// Lanes claim items from a shared atomic cursor in ascending order; at
// most `concurrency` workers are ever active at once.
//
// # Retry policies
//
// RetryPolicy is a composable value describing how often and how long to
// wait between retries. The exporter nests two of them: a short per-book
// policy inside the round-level escalation schedule.
//
// # Sleep
//
// Sleep is the context-aware delay primitive used for retry pauses and
// lane pacing.
package task

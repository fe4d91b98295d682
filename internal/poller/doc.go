// Package poller drives periodic sentiment fetches.
//
// Poller owns the repeating timer: it calls its tick function once on Start
// and then every interval until Stop or context cancellation. Guard sits
// behind the tick and keeps at most one fetch outstanding:
//
//	tick ──> Guard.Request ──┬─ in flight? ──> dropped (returns false)
//	                         └─ idle/error ──> go source(ctx) ──> onResult
//
// A dropped tick is intentional backpressure. Because only one fetch can be
// outstanding, results are delivered in the order fetches started. A failed
// fetch leaves the guard in StatusError, which does not block the next tick;
// retry is unbounded and paced only by the poll interval.
//
// Both types take part in teardown: Poller.Stop waits for the polling
// goroutine to exit and Guard.Close cancels the in-flight fetch and drops its
// result.
package poller

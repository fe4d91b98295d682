package poller

import (
	"context"
	"sync"

	"github.com/five82/sentiboard/internal/sentiment"
)

// Source fetches one sentiment snapshot.
type Source func(ctx context.Context) (sentiment.Snapshot, error)

// ResultFunc receives the outcome of a fetch.
type ResultFunc func(sentiment.Snapshot, error)

// Guard allows at most one outstanding fetch.
type Guard struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	status sentiment.FetchStatus
	closed bool
	wg     sync.WaitGroup
}

// NewGuard returns a Guard whose fetches run under ctx.
func NewGuard(ctx context.Context) *Guard {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Guard{ctx: ctx, cancel: cancel}
}

// Request starts source on a new goroutine unless a fetch is already in flight,
// in which case it returns false without calling source. When source returns,
// onResult receives its result and the guard becomes Idle (success) or Error
// (failure); either way the next Request may start a fetch.
//
// onResult is called with the guard locked and must not call back into it.
// Results arriving after Close are dropped.
func (g *Guard) Request(source Source, onResult ResultFunc) bool {
	g.mu.Lock()
	if g.closed || g.status == sentiment.StatusInFlight {
		g.mu.Unlock()
		return false
	}
	g.status = sentiment.StatusInFlight
	g.wg.Add(1)
	g.mu.Unlock()

	go func() {
		defer g.wg.Done()
		snap, err := source(g.ctx)

		g.mu.Lock()
		defer g.mu.Unlock()
		if err != nil {
			g.status = sentiment.StatusError
		} else {
			g.status = sentiment.StatusIdle
		}
		if g.closed {
			return
		}
		if onResult != nil {
			onResult(snap, err)
		}
	}()
	return true
}

// Status returns the state of the most recent fetch.
func (g *Guard) Status() sentiment.FetchStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Close cancels an in-flight fetch and waits for it to settle. No result is
// delivered once Close has returned, and later Requests are rejected.
func (g *Guard) Close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	g.cancel()
	g.wg.Wait()
}

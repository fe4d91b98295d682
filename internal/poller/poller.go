package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/five82/sentiboard/internal/sentiment"
)

// Poller invokes a tick function once on start and then at a fixed cadence.
type Poller struct {
	clock clockwork.Clock

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// New returns a Poller driven by clock. A nil clock uses the real clock.
func New(clock clockwork.Clock) *Poller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Poller{clock: clock}
}

// Start launches the polling goroutine and returns immediately. onTick runs on
// that goroutine, once right away and then every interval, until Stop is
// called or ctx is cancelled. onTick must not block for long.
//
// Calling Start while the poller is running is a no-op: the existing timer
// keeps its cadence and the new arguments are ignored.
func (p *Poller) Start(ctx context.Context, interval time.Duration, onTick func()) error {
	if interval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive, got %v", sentiment.ErrInvalidArgument, interval)
	}
	if onTick == nil {
		return fmt.Errorf("%w: tick func is nil", sentiment.ErrInvalidArgument)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.runningLocked() {
		return nil
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	p.stop, p.done = stop, done

	ticker := p.clock.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()

		onTick()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.Chan():
				onTick()
			}
		}
	}()
	return nil
}

// Stop cancels the timer and waits for the polling goroutine to exit. It is
// safe to call when the poller was never started or is already stopped. Stop
// must not be called from inside onTick.
func (p *Poller) Stop() {
	p.mu.Lock()
	stop, done := p.stop, p.done
	p.stop, p.done = nil, nil
	p.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Running reports whether the polling goroutine is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runningLocked()
}

func (p *Poller) runningLocked() bool {
	if p.done == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

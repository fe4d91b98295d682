package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/five82/sentiboard/internal/backend"
	"github.com/five82/sentiboard/internal/logging"
	"github.com/five82/sentiboard/internal/poller"
	"github.com/five82/sentiboard/internal/sentiment"
	"github.com/five82/sentiboard/internal/state"
)

// DashboardOptions configure a Dashboard.
type DashboardOptions struct {
	Source    backend.SentimentSource
	SessionID string
	Interval  time.Duration
	Clock     clockwork.Clock // nil uses the real clock
	Logger    *log.Logger     // nil discards
}

// Dashboard binds the poller, fetch guard and store for one chat session.
type Dashboard struct {
	ctx       context.Context
	source    backend.SentimentSource
	sessionID string
	interval  time.Duration
	logger    *log.Logger

	store  *state.Store
	poller *poller.Poller
	guard  *poller.Guard

	closeOnce sync.Once
}

// NewDashboard validates opts and returns a stopped Dashboard. Fetches run
// under ctx; callers must Close the dashboard when done with it.
func NewDashboard(ctx context.Context, opts DashboardOptions) (*Dashboard, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("%w: sentiment source is nil", sentiment.ErrInvalidArgument)
	}
	if opts.SessionID == "" {
		return nil, fmt.Errorf("%w: session id required", sentiment.ErrInvalidArgument)
	}
	if opts.Interval <= 0 {
		return nil, fmt.Errorf("%w: poll interval must be positive, got %v", sentiment.ErrInvalidArgument, opts.Interval)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Dashboard{
		ctx:       ctx,
		source:    opts.Source,
		sessionID: opts.SessionID,
		interval:  opts.Interval,
		logger:    logger.With("session", opts.SessionID),
		store:     &state.Store{},
		poller:    poller.New(opts.Clock),
		guard:     poller.NewGuard(ctx),
	}, nil
}

// Start fetches immediately and then once per interval until Close or until
// the dashboard context is cancelled. Calling Start again is a no-op.
func (d *Dashboard) Start() error {
	if err := d.poller.Start(d.ctx, d.interval, d.tick); err != nil {
		return fmt.Errorf("start poller: %w", err)
	}
	d.logger.Info("polling started", "interval", d.interval)
	return nil
}

func (d *Dashboard) tick() {
	d.Refresh()
}

// Refresh requests a fetch now. It returns false when a fetch is already
// outstanding and the request was dropped.
func (d *Dashboard) Refresh() bool {
	if !d.guard.Request(d.fetch, d.store.Update) {
		d.logger.Debug("fetch in flight, tick dropped")
		return false
	}
	return true
}

func (d *Dashboard) fetch(ctx context.Context) (sentiment.Snapshot, error) {
	snap, err := d.source.FetchSentiment(ctx, d.sessionID)
	if err != nil {
		d.logger.Warn("sentiment fetch failed", "err", err)
		return sentiment.Snapshot{}, err
	}
	d.logger.Debug("sentiment fetched", "score", snap.FrustrationScore, "suggestions", len(snap.Suggestions))
	return snap, nil
}

// Escalate escalates the session's case. The outcome is logged and returned;
// it is never retried.
func (d *Dashboard) Escalate(ctx context.Context) error {
	if err := d.source.Escalate(ctx, d.sessionID); err != nil {
		d.logger.Error("escalation failed", "err", err)
		return fmt.Errorf("%w: %w", sentiment.ErrEscalationFailed, err)
	}
	d.logger.Info("case escalated")
	return nil
}

// Store exposes the dashboard state to the presentation layer.
func (d *Dashboard) Store() *state.Store {
	return d.store
}

// FetchStatus reports the state of the most recent fetch.
func (d *Dashboard) FetchStatus() sentiment.FetchStatus {
	return d.guard.Status()
}

// SessionID returns the watched chat session.
func (d *Dashboard) SessionID() string {
	return d.sessionID
}

// Close stops polling, cancels an outstanding fetch and detaches the store.
// It is safe to call more than once.
func (d *Dashboard) Close() {
	d.closeOnce.Do(func() {
		d.poller.Stop()
		d.guard.Close()
		d.store.Close()
		d.logger.Info("polling stopped")
	})
}

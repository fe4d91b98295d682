package app

import (
	"context"
	"fmt"
	"io"

	"github.com/five82/sentiboard/internal/logtail"
	"github.com/five82/sentiboard/internal/sentiment"
	"github.com/five82/sentiboard/internal/ui"
)

// Escalate escalates a session's case once and reports the outcome on w.
func Escalate(ctx context.Context, opts Options, w io.Writer) error {
	e, err := setup(opts, true)
	if err != nil {
		return err
	}
	defer e.close()

	sessionID, err := e.sessionID(opts)
	if err != nil {
		return err
	}

	logger := e.logger.With("session", sessionID)
	if err := e.client.Escalate(ctx, sessionID); err != nil {
		logger.Error("escalation failed", "err", err)
		return fmt.Errorf("%w: %w", sentiment.ErrEscalationFailed, err)
	}
	logger.Info("case escalated")
	_, err = fmt.Fprintf(w, "Case for session %s escalated.\n", sessionID)
	return err
}

// Aggregate prints every active session with its mood.
func Aggregate(ctx context.Context, opts Options, w io.Writer) error {
	e, err := setup(opts, true)
	if err != nil {
		return err
	}
	defer e.close()

	rows, err := e.client.FetchAggregate(ctx)
	if err != nil {
		e.logger.Error("aggregate fetch failed", "err", err)
		return fmt.Errorf("%w: %w", sentiment.ErrFetchFailed, err)
	}
	e.logger.Debug("aggregate fetched", "sessions", len(rows))

	_, err = io.WriteString(w, ui.RenderAggregate(rows, e.cfg.ScoreScale))
	return err
}

// Logs prints the last lines of sentiboard's log file, optionally filtered.
func Logs(opts Options, w io.Writer, lines int, filter string) error {
	e, err := setup(opts, false)
	if err != nil {
		return err
	}
	defer e.close()

	out, err := logtail.Read(e.cfg.LogPath(), lines, filter)
	if err != nil {
		return err
	}
	for _, line := range out {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

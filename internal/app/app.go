package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/sentiboard/internal/backend"
	"github.com/five82/sentiboard/internal/config"
	"github.com/five82/sentiboard/internal/logging"
	"github.com/five82/sentiboard/internal/prefs"
	"github.com/five82/sentiboard/internal/ui"
)

// Options configure sentiboard commands.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/sentiboard/prefs.toml
	SessionID  string // overrides config and the last watched session
	PollEvery  time.Duration
	Debug      bool
}

// ErrNoSession is returned when no chat session was named anywhere.
var ErrNoSession = errors.New("no session id: pass --session or set session_id in config")

type env struct {
	cfg    config.Config
	prefs  prefs.Prefs
	logger *log.Logger
	closer io.Closer
	client *backend.Client
}

func setup(opts Options, mirrorStderr bool) (*env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(logging.Config{
		Path:   cfg.LogPath(),
		Debug:  opts.Debug,
		Stderr: mirrorStderr && opts.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client, err := backend.NewClient(cfg.APIBase, cfg.RequestTimeout)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init backend client: %w", err)
	}

	return &env{
		cfg:    cfg,
		prefs:  prefs.Load(opts.PrefsPath),
		logger: logger,
		closer: closer,
		client: client,
	}, nil
}

func (e *env) close() {
	_ = e.closer.Close()
}

func (e *env) sessionID(opts Options) (string, error) {
	for _, candidate := range []string{opts.SessionID, e.cfg.SessionID, e.prefs.LastSession} {
		if id := strings.TrimSpace(candidate); id != "" {
			return id, nil
		}
	}
	return "", ErrNoSession
}

// Run boots the sentiment dashboard TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	e, err := setup(opts, false)
	if err != nil {
		return err
	}
	defer e.close()

	sessionID, err := e.sessionID(opts)
	if err != nil {
		return err
	}

	interval := e.cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = opts.PollEvery
	}

	dash, err := NewDashboard(ctx, DashboardOptions{
		Source:    e.client,
		SessionID: sessionID,
		Interval:  interval,
		Logger:    e.logger,
	})
	if err != nil {
		return fmt.Errorf("init dashboard: %w", err)
	}
	defer dash.Close()

	if err := dash.Start(); err != nil {
		return err
	}

	if err := prefs.Update(opts.PrefsPath, func(p *prefs.Prefs) { p.LastSession = sessionID }); err != nil {
		e.logger.Warn("save last session", "err", err)
	}

	err = ui.Run(ui.Options{
		Context:   ctx,
		Store:     dash.Store(),
		Actions:   dash,
		Config:    &e.cfg,
		SessionID: sessionID,
		ThemeName: e.prefs.Theme,
		PrefsPath: opts.PrefsPath,
		Logger:    e.logger,
	})
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

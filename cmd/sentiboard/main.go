package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/five82/sentiboard/internal/app"
)

var version = "v0.1.0"

// runContext is bound into every command's Run method.
type runContext struct {
	ctx  context.Context
	opts app.Options
}

type watchCmd struct{}

func (c *watchCmd) Run(rc *runContext) error {
	return app.Run(rc.ctx, rc.opts)
}

type escalateCmd struct{}

func (c *escalateCmd) Run(rc *runContext) error {
	return app.Escalate(rc.ctx, rc.opts, os.Stdout)
}

type aggregateCmd struct{}

func (c *aggregateCmd) Run(rc *runContext) error {
	return app.Aggregate(rc.ctx, rc.opts, os.Stdout)
}

type logsCmd struct {
	Lines int    `short:"n" help:"Number of lines to show (0 for all)." default:"200"`
	Grep  string `help:"Only show lines containing this text (case-insensitive)."`
}

func (c *logsCmd) Run(rc *runContext) error {
	return app.Logs(rc.opts, os.Stdout, c.Lines, c.Grep)
}

var cli struct {
	Version kong.VersionFlag `help:"Print version and exit."`
	Config  string           `help:"Config file path." type:"path" placeholder:"PATH"`
	Prefs   string           `help:"Preferences file path." type:"path" placeholder:"PATH"`
	Session string           `help:"Chat session id to watch." short:"s"`
	Poll    time.Duration    `help:"Poll interval, e.g. 5s (overrides config)."`
	Debug   bool             `help:"Enable debug logging."`

	Watch     watchCmd     `cmd:"" help:"Open the live sentiment dashboard." default:"1"`
	Escalate  escalateCmd  `cmd:"" help:"Escalate the session's case and exit."`
	Aggregate aggregateCmd `cmd:"" help:"List the mood of every active session."`
	Logs      logsCmd      `cmd:"" help:"Print sentiboard's own log."`
}

func main() {
	os.Exit(run())
}

func run() int {
	kctx := kong.Parse(&cli,
		kong.Name("sentiboard"),
		kong.Description("Live customer sentiment dashboard for chat agents"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rc := &runContext{
		ctx: ctx,
		opts: app.Options{
			ConfigPath: cli.Config,
			PrefsPath:  cli.Prefs,
			SessionID:  cli.Session,
			PollEvery:  cli.Poll,
			Debug:      cli.Debug,
		},
	}

	if err := kctx.Run(rc); err != nil {
		fmt.Fprintf(os.Stderr, "sentiboard: %v\n", err)
		return 1
	}
	return 0
}

// Package app provides the orchestration layer for sentiboard.
//
// # Overview
//
// This package wires together configuration, logging, the backend client,
// the polling core and the UI. It is the composition root: every dependency
// is created here and released here.
//
// # Components
//
//   - app.go: Run (the dashboard TUI) and shared command setup
//   - dashboard.go: Dashboard, which binds Poller, Guard and Store for one session
//   - commands.go: one-shot Escalate, Aggregate and Logs commands
//
// # Data Flow
//
//	Run()
//	 ├─> config.Load()        Read config.toml
//	 ├─> logging.New()        Rotating file logger
//	 ├─> backend.NewClient()  HTTP client
//	 ├─> NewDashboard()       Poller + Guard + Store
//	 ├─> dash.Start()         First fetch now, then every poll interval
//	 └─> ui.Run()             TUI (blocks); defer dash.Close()
//
//	Poller goroutine:
//	┌─────────────────────────────────────────────┐
//	│ tick ─> Dashboard.Refresh                   │
//	│          └─> Guard.Request (single flight)  │
//	│                └─> FetchSentiment           │
//	│                └─> Store.Update             │
//	│ UI reads Store.View() on its own refresh    │
//	└─────────────────────────────────────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file unreadable or invalid
//   - Log directory cannot be created
//   - No session id in flags, config or prefs
//
// Recoverable errors (logged, polling continues):
//   - Sentiment fetch failures: the store shows the snapshot as unavailable
//     and the next tick retries
//   - Escalation failures: surfaced to the agent once, never retried
//
// # Teardown
//
// Dashboard.Close is deferred by Run right after construction, so the timer
// and any in-flight fetch are released on every exit path: the user quitting,
// a UI error, or context cancellation from SIGINT/SIGTERM.
package app

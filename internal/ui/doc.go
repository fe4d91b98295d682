// Package ui renders the sentiment dashboard with Bubble Tea.
//
// The Model never fetches anything itself. A one second tick copies a View out
// of the state.Store, and key presses call back into Actions (refresh and
// escalate) or into the store's edit state (begin and end editing).
//
// # Layout
//
//   - Header: session id, fetch status and an OFFLINE badge after repeated failures
//   - Banner: the last fetch error while the backend is unreachable
//   - Gauge: a green to red gradient with a pointer at the normalized score
//   - Suggestions: the current replies, one marked while it is being edited
//   - Footer: the "*Last updated" line, transient messages and key help
//
// RenderAggregate is shared with the non-interactive aggregate command.
package ui

// Package state holds the sentiment dashboard's render state.
//
// # Overview
//
// The Store keeps two independently owned pieces of state side by side:
//
//   - the latest sentiment.Snapshot, written only by fetch results
//   - the EditState, written only by agent actions (BeginEdit / EndEdit)
//
// The render-ready suggestion list is never stored. DerivedView and View
// compute it on every call from (snapshot, edit state), so a UI-only flag can
// never leak into fetched data and a fetch can never clobber an edit.
//
//	Guard result ──> Update ──> OnSnapshot / OnFetchError ──┐
//	                                                        │ snapshot
//	Agent keys ──> BeginEdit / EndEdit ─────────────────────┤ edit state
//	                                                        ▼
//	                                     DerivedView() / View() ──> ui
//
// # Update Semantics
//
//	store.Update(snap, nil)
//	→ snapshot replaced wholesale, suggestion indexes renumbered 0..n-1
//	→ LastError = nil, ConsecutiveFailures = 0, LastUpdated = now
//	→ EditState unchanged
//
//	store.Update(sentiment.Snapshot{}, err)
//	→ snapshot cleared (HasSnapshot = false)
//	→ LastError wraps sentiment.ErrFetchFailed and err
//	→ ConsecutiveFailures++, LastUpdated = now
//	→ EditState unchanged
//
// # Stale Edit Index
//
// When a new snapshot has fewer suggestions than the edit index, no item in
// the derived view is marked as editing, but EditState keeps the old index
// until EndEdit is called. The store does not clear it on its own.
//
// # Concurrency Model
//
// The poller's fetch goroutine writes results while the Bubble Tea loop reads
// views and applies edit actions, so all access goes through a sync.RWMutex
// and every returned value is a copy.
//
// # Teardown
//
// Close makes the store ignore fetch results that complete after the owning
// dashboard has been torn down.
package state

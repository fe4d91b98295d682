package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/sentiboard/internal/sentiment"
)

// EditState records which suggestion, if any, the agent is editing.
type EditState struct {
	Index  int
	Active bool
}

// Editing reports whether the suggestion at index is being edited.
func (e EditState) Editing(index int) bool {
	return e.Active && e.Index == index
}

// SuggestionView is a suggestion annotated for rendering.
type SuggestionView struct {
	Content   string
	Index     int
	IsEditing bool
}

// View is a render-ready copy of the store.
type View struct {
	Snapshot            sentiment.Snapshot
	HasSnapshot         bool
	Suggestions         []SuggestionView
	Edit                EditState
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the backend has been unreachable for multiple polls.
func (v View) IsOffline() bool {
	return v.ConsecutiveFailures >= 2
}

// Store holds the latest snapshot next to the locally owned edit state.
// Snapshots and edit actions never write to each other's fields.
type Store struct {
	mu          sync.RWMutex
	snapshot    sentiment.Snapshot
	hasSnapshot bool
	edit        EditState
	lastUpdated time.Time
	lastErr     error
	failures    int
	closed      bool
}

// Update applies a fetch result. It matches the Guard result callback.
func (s *Store) Update(snap sentiment.Snapshot, err error) {
	if err != nil {
		s.OnFetchError(err)
		return
	}
	s.OnSnapshot(snap)
}

// OnSnapshot replaces the stored snapshot wholesale. The edit state is left
// untouched, including an index the new snapshot no longer has.
func (s *Store) OnSnapshot(snap sentiment.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.snapshot = snap.Clone()
	for i := range s.snapshot.Suggestions {
		s.snapshot.Suggestions[i].Index = i
	}
	s.hasSnapshot = true
	s.lastErr = nil
	s.lastUpdated = time.Now()
	s.failures = 0
}

// OnFetchError marks the snapshot unavailable and records err.
func (s *Store) OnFetchError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.snapshot = sentiment.Snapshot{}
	s.hasSnapshot = false
	s.lastErr = fmt.Errorf("%w: %w", sentiment.ErrFetchFailed, err)
	s.lastUpdated = time.Now()
	s.failures++
}

// BeginEdit focuses the suggestion at index. Indexes outside the current
// snapshot fail with sentiment.ErrOutOfRange and leave the edit state as is.
func (s *Store) BeginEdit(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.snapshot.Suggestions)
	if index < 0 || index >= count {
		return fmt.Errorf("%w: edit index %d, have %d suggestions", sentiment.ErrOutOfRange, index, count)
	}
	s.edit = EditState{Index: index, Active: true}
	return nil
}

// EndEdit clears the edit state. Calling it when nothing is being edited is a no-op.
func (s *Store) EndEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edit = EditState{}
}

// EditState returns the current edit focus.
func (s *Store) EditState() EditState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.edit
}

// DerivedView projects the snapshot suggestions through the edit state.
// It returns nil when no snapshot is available.
func (s *Store) DerivedView() []SuggestionView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return derive(s.snapshot.Suggestions, s.edit)
}

// View returns a copy of everything the presentation layer renders.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := View{
		Snapshot:            s.snapshot.Clone(),
		HasSnapshot:         s.hasSnapshot,
		Suggestions:         derive(s.snapshot.Suggestions, s.edit),
		Edit:                s.edit,
		LastUpdated:         s.lastUpdated,
		ConsecutiveFailures: s.failures,
	}
	if s.lastErr != nil {
		v.LastError = fmt.Errorf("%w", s.lastErr)
	}
	return v
}

// Close discards any fetch result delivered afterwards. Edit actions keep working
// so a view being torn down can still unwind its own state.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func derive(suggestions []sentiment.Suggestion, edit EditState) []SuggestionView {
	if len(suggestions) == 0 {
		return nil
	}
	out := make([]SuggestionView, len(suggestions))
	for i, sg := range suggestions {
		out[i] = SuggestionView{
			Content:   sg.Content,
			Index:     sg.Index,
			IsEditing: edit.Editing(sg.Index),
		}
	}
	return out
}

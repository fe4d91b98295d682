package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/sentiboard/internal/config"
	"github.com/five82/sentiboard/internal/prefs"
	"github.com/five82/sentiboard/internal/sentiment"
	"github.com/five82/sentiboard/internal/state"
)

type fakeActions struct {
	refreshes   int
	refreshOK   bool
	escalations int
	escalateErr error
	status      sentiment.FetchStatus
}

func (f *fakeActions) Refresh() bool {
	f.refreshes++
	return f.refreshOK
}

func (f *fakeActions) Escalate(context.Context) error {
	f.escalations++
	return f.escalateErr
}

func (f *fakeActions) FetchStatus() sentiment.FetchStatus { return f.status }

func snapshotWith(contents ...string) sentiment.Snapshot {
	snap := sentiment.Snapshot{FrustrationScore: 0.4}
	for _, c := range contents {
		snap.Suggestions = append(snap.Suggestions, sentiment.Suggestion{Content: c})
	}
	return snap
}

func newTestModel(t *testing.T, store *state.Store, actions *fakeActions, cfg *config.Config) Model {
	t.Helper()
	return New(Options{
		Store:     store,
		Actions:   actions,
		Config:    cfg,
		SessionID: "chat-1",
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		msg = tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+y":
		msg = tea.KeyMsg{Type: tea.KeyCtrlY}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_EditLifecycle(t *testing.T) {
	store := &state.Store{}
	store.OnSnapshot(snapshotWith("Sorry about that", "Let me check"))
	m := newTestModel(t, store, &fakeActions{}, nil)

	m, _ = press(t, m, "j")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}

	m, _ = press(t, m, "e")
	if got := store.EditState(); got != (state.EditState{Index: 1, Active: true}) {
		t.Fatalf("EditState = %+v, want index 1 active", got)
	}
	if !m.editor.Focused() || m.editor.Value() != "Let me check" {
		t.Fatalf("editor focused=%v value=%q", m.editor.Focused(), m.editor.Value())
	}
	if !m.view.Suggestions[1].IsEditing || m.view.Suggestions[0].IsEditing {
		t.Fatalf("suggestions = %+v, want only index 1 editing", m.view.Suggestions)
	}

	// Typing goes to the editor, not to the list bindings.
	m, _ = press(t, m, "q")
	if !strings.Contains(m.editor.Value(), "q") {
		t.Fatalf("editor value = %q, want typed rune", m.editor.Value())
	}

	m, _ = press(t, m, "ctrl+s")
	if store.EditState().Active || m.editor.Focused() {
		t.Fatalf("edit still active after ctrl+s")
	}
	if got := store.DerivedView(); got[0].Content != "Sorry about that" || got[1].Content != "Let me check" {
		t.Fatalf("DerivedView = %+v, want snapshot content untouched", got)
	}

	m, _ = press(t, m, "enter")
	if got := store.EditState(); got != (state.EditState{Index: 1, Active: true}) {
		t.Fatalf("EditState after enter = %+v", got)
	}
	m, _ = press(t, m, "esc")
	if store.EditState().Active {
		t.Fatal("edit still active after esc")
	}
}

func TestModel_EditWithoutSnapshotFlashes(t *testing.T) {
	store := &state.Store{}
	m := newTestModel(t, store, &fakeActions{}, nil)

	m, _ = press(t, m, "e")
	if store.EditState().Active || m.editor.Focused() {
		t.Fatal("edit began without suggestions")
	}
	if m.flash == "" || !m.flashErr {
		t.Fatalf("flash = %q err=%v, want an error flash", m.flash, m.flashErr)
	}
}

func TestModel_StaleEditIndexSurvivesShrink(t *testing.T) {
	store := &state.Store{}
	store.OnSnapshot(snapshotWith("a", "b", "c"))
	m := newTestModel(t, store, &fakeActions{}, nil)

	m, _ = press(t, m, "j")
	m, _ = press(t, m, "j")
	m, _ = press(t, m, "e")

	store.OnSnapshot(snapshotWith("only"))
	m = update(t, m, tickMsg{})

	if len(m.view.Suggestions) != 1 || m.view.Suggestions[0].IsEditing {
		t.Fatalf("suggestions = %+v, want one unmarked suggestion", m.view.Suggestions)
	}
	if got := store.EditState(); got != (state.EditState{Index: 2, Active: true}) {
		t.Fatalf("EditState = %+v, want stale index 2 kept", got)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want clamped to 0", m.cursor)
	}
	if !m.editor.Focused() {
		t.Fatal("editor closed by a snapshot update")
	}
}

func TestModel_CopySuggestionAndDraft(t *testing.T) {
	var copied []string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	store := &state.Store{}
	store.OnSnapshot(snapshotWith("first", "second"))
	m := newTestModel(t, store, &fakeActions{}, nil)

	m, cmd := press(t, m, "c")
	if cmd == nil {
		t.Fatal("copy returned no command")
	}
	m = update(t, m, cmd())
	if len(copied) != 1 || copied[0] != "first" {
		t.Fatalf("copied = %v, want [first]", copied)
	}
	if m.flash != "Copied suggestion 1" {
		t.Fatalf("flash = %q", m.flash)
	}

	m, _ = press(t, m, "e")
	m, cmd = press(t, m, "ctrl+y")
	if cmd == nil {
		t.Fatal("copy draft returned no command")
	}
	_ = update(t, m, cmd())
	if len(copied) != 2 || copied[1] != "first" {
		t.Fatalf("copied = %v, want draft copied", copied)
	}
}

func TestModel_CopyFailureFlashesError(t *testing.T) {
	orig := writeClipboard
	writeClipboard = func(string) error { return errors.New("no display") }
	t.Cleanup(func() { writeClipboard = orig })

	store := &state.Store{}
	store.OnSnapshot(snapshotWith("first"))
	m := newTestModel(t, store, &fakeActions{}, nil)

	m, cmd := press(t, m, "c")
	m = update(t, m, cmd())
	if !m.flashErr || !strings.Contains(m.flash, "no display") {
		t.Fatalf("flash = %q err=%v", m.flash, m.flashErr)
	}
}

func TestModel_EscalateOnceAtATime(t *testing.T) {
	actions := &fakeActions{escalateErr: errors.New("backend down")}
	m := newTestModel(t, &state.Store{}, actions, nil)

	m, cmd := press(t, m, "x")
	if cmd == nil || !m.escalating {
		t.Fatal("escalate did not start")
	}
	m, again := press(t, m, "x")
	if again != nil {
		t.Fatal("second escalate started while the first was pending")
	}

	m = update(t, m, cmd())
	if actions.escalations != 1 {
		t.Fatalf("escalations = %d, want 1", actions.escalations)
	}
	if m.escalating || !m.flashErr || !strings.Contains(m.flash, "backend down") {
		t.Fatalf("escalating=%v flash=%q err=%v", m.escalating, m.flash, m.flashErr)
	}

	actions.escalateErr = nil
	m, cmd = press(t, m, "x")
	m = update(t, m, cmd())
	if m.flash != "Case escalated" || m.flashErr {
		t.Fatalf("flash = %q err=%v", m.flash, m.flashErr)
	}
}

func TestModel_EscalateHiddenByConfig(t *testing.T) {
	actions := &fakeActions{}
	cfg := config.Default()
	cfg.ShowEscalate = false
	m := newTestModel(t, &state.Store{}, actions, &cfg)

	_, cmd := press(t, m, "x")
	if cmd != nil {
		t.Fatal("escalate ran with show_escalate disabled")
	}
}

func TestModel_RefreshReportsDroppedTick(t *testing.T) {
	actions := &fakeActions{refreshOK: false}
	m := newTestModel(t, &state.Store{}, actions, nil)

	m, _ = press(t, m, "r")
	if actions.refreshes != 1 || m.flash == "" {
		t.Fatalf("refreshes=%d flash=%q", actions.refreshes, m.flash)
	}

	actions.refreshOK = true
	m.flash = ""
	m, _ = press(t, m, "r")
	if actions.refreshes != 2 || m.flash != "" {
		t.Fatalf("refreshes=%d flash=%q", actions.refreshes, m.flash)
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	m := newTestModel(t, &state.Store{}, &fakeActions{}, nil)
	start := m.theme.Name

	m, _ = press(t, m, "T")
	if m.theme.Name != NextTheme(start) {
		t.Fatalf("theme = %q, want %q", m.theme.Name, NextTheme(start))
	}
	if got := prefs.Load(m.prefsPath).Theme; got != m.theme.Name {
		t.Fatalf("saved theme = %q, want %q", got, m.theme.Name)
	}
}

func TestModel_ViewRendersSections(t *testing.T) {
	store := &state.Store{}
	actions := &fakeActions{}
	m := newTestModel(t, store, actions, nil)

	if got := m.View(); got != "Loading..." {
		t.Fatalf("View before size = %q", got)
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	out := m.View()
	for _, want := range []string{"sentiboard", "chat-1", "Customer frustration", "Waiting for sentiment", "Suggested replies", "*Last updated : never"} {
		if !strings.Contains(out, want) {
			t.Fatalf("View missing %q:\n%s", want, out)
		}
	}

	store.OnFetchError(errors.New("connection refused"))
	actions.status = sentiment.StatusError
	m = update(t, m, tickMsg{})
	out = m.View()
	if !strings.Contains(out, "Sentiment unavailable") {
		t.Fatalf("View missing error banner:\n%s", out)
	}

	store.OnSnapshot(snapshotWith("Sorry about that"))
	actions.status = sentiment.StatusIdle
	m = update(t, m, tickMsg{})
	out = m.View()
	if strings.Contains(out, "Sentiment unavailable") {
		t.Fatalf("error banner still shown after recovery:\n%s", out)
	}
	if !strings.Contains(out, "Sorry about that") || !strings.Contains(out, "4.0/10") {
		t.Fatalf("View missing suggestion or score:\n%s", out)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m := newTestModel(t, &state.Store{}, &fakeActions{}, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, _ = press(t, m, "?")
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay not shown")
	}
	m, cmd := press(t, m, "q")
	if m.showHelp || cmd != nil {
		t.Fatal("any key should only close the help overlay")
	}
}

func TestRun_RequiresStore(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Fatal("Run without a store returned nil error")
	}
}

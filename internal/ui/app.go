package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/sentiboard/internal/config"
	"github.com/five82/sentiboard/internal/prefs"
	"github.com/five82/sentiboard/internal/sentiment"
	"github.com/five82/sentiboard/internal/state"
)

// Actions are the dashboard operations the UI triggers.
type Actions interface {
	Refresh() bool
	Escalate(ctx context.Context) error
	FetchStatus() sentiment.FetchStatus
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Store        *state.Store
	Actions      Actions
	Config       *config.Config
	SessionID    string
	ThemeName    string
	PrefsPath    string
	Logger       *log.Logger
	RefreshEvery time.Duration
}

const (
	defaultRefreshEvery = time.Second
	flashDuration       = 4 * time.Second
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx          context.Context
	store        *state.Store
	actions      Actions
	config       *config.Config
	sessionID    string
	prefsPath    string
	logger       *log.Logger
	refreshEvery time.Duration

	theme  Theme
	keys   keyMap
	help   help.Model
	gauge  progress.Model
	editor textarea.Model
	width  int
	height int
	ready  bool

	view       state.View
	status     sentiment.FetchStatus
	cursor     int
	showHelp   bool
	escalating bool

	flash      string
	flashErr   bool
	flashUntil time.Time
	now        func() time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refreshEvery := opts.RefreshEvery
	if refreshEvery <= 0 {
		refreshEvery = defaultRefreshEvery
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	keys := DefaultKeyMap()
	if opts.Config != nil && !opts.Config.ShowEscalate {
		keys.Escalate.SetEnabled(false)
	}

	editor := textarea.New()
	editor.Placeholder = "Edit the suggestion..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.SetHeight(4)

	m := Model{
		ctx:          ctx,
		store:        opts.Store,
		actions:      opts.Actions,
		config:       opts.Config,
		sessionID:    opts.SessionID,
		prefsPath:    prefsPath,
		logger:       logger,
		refreshEvery: refreshEvery,
		theme:        GetTheme(opts.ThemeName),
		keys:         keys,
		help:         help.New(),
		gauge:        newGauge(),
		editor:       editor,
		now:          time.Now,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.refreshEvery), textarea.Blink)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.gauge.Width = gaugeWidth(msg.Width)
		m.editor.SetWidth(max(20, msg.Width-6))
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.refresh()
		if !m.flashUntil.IsZero() && m.now().After(m.flashUntil) {
			m.flash = ""
			m.flashUntil = time.Time{}
		}
		return m, tickCmd(m.refreshEvery)

	case escalateResultMsg:
		m.escalating = false
		if msg.err != nil {
			m.setFlash("Escalation failed: "+msg.err.Error(), true)
		} else {
			m.setFlash("Case escalated", false)
		}
		return m, nil

	case clipboardResultMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard write failed", "err", msg.err)
			m.setFlash("Copy failed: "+msg.err.Error(), true)
		} else {
			m.setFlash("Copied "+msg.what, false)
		}
		return m, nil
	}

	if m.editor.Focused() {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.editor.Focused() {
		return m.handleEditorKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		name := m.theme.Name
		if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name }); err != nil {
			m.logger.Warn("save theme", "err", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.actions != nil && !m.actions.Refresh() {
			m.setFlash("Fetch already in flight", false)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Suggestions)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		return m.beginEdit()

	case key.Matches(msg, m.keys.Copy):
		sg, ok := m.selected()
		if !ok {
			m.setFlash("Nothing to copy", true)
			return m, nil
		}
		return m, copyCmd(sg.Content, fmt.Sprintf("suggestion %d", sg.Index+1))

	case key.Matches(msg, m.keys.Escalate):
		if m.actions == nil || m.escalating {
			return m, nil
		}
		m.escalating = true
		m.setFlash("Escalating case...", false)
		return m, escalateCmd(m.ctx, m.actions)
	}
	return m, nil
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Done):
		m.endEdit()
		return m, nil

	case key.Matches(msg, m.keys.CopyDraft):
		return m, copyCmd(m.editor.Value(), "draft")
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) beginEdit() (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}
	if err := m.store.BeginEdit(m.cursor); err != nil {
		m.setFlash("Nothing to edit", true)
		return m, nil
	}
	m.refresh()
	sg, _ := m.selected()
	m.editor.SetValue(sg.Content)
	return m, m.editor.Focus()
}

// endEdit closes the editor. The draft is discarded; suggestions are
// regenerated by the backend on every poll.
func (m *Model) endEdit() {
	if m.store != nil {
		m.store.EndEdit()
	}
	m.editor.Blur()
	m.editor.Reset()
	m.refresh()
}

// refresh pulls a fresh view from the store.
func (m *Model) refresh() {
	if m.store != nil {
		m.view = m.store.View()
	}
	if m.actions != nil {
		m.status = m.actions.FetchStatus()
	}
	if m.cursor >= len(m.view.Suggestions) {
		m.cursor = max(0, len(m.view.Suggestions)-1)
	}
	if !m.view.Edit.Active && m.editor.Focused() {
		m.editor.Blur()
	}
}

func (m Model) selected() (state.SuggestionView, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Suggestions) {
		return state.SuggestionView{}, false
	}
	return m.view.Suggestions[m.cursor], true
}

func (m *Model) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashErr = isErr
	m.flashUntil = m.now().Add(flashDuration)
}

// Messages

type tickMsg time.Time

type escalateResultMsg struct {
	err error
}

type clipboardResultMsg struct {
	what string
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func escalateCmd(ctx context.Context, actions Actions) tea.Cmd {
	return func() tea.Msg {
		return escalateResultMsg{err: actions.Escalate(ctx)}
	}
}

func copyCmd(content, what string) tea.Cmd {
	return func() tea.Msg {
		return clipboardResultMsg{what: what, err: writeClipboard(content)}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Store == nil {
		return errors.New("ui requires a sentiment store")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

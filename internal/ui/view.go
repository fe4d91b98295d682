package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sentiboard/internal/sentiment"
)

func (m Model) renderMain() string {
	styles := m.theme.Styles()

	parts := []string{m.renderHeader()}
	if banner := m.renderBanner(styles); banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts,
		m.renderGauge(styles),
		m.renderSuggestions(styles),
	)
	if m.editor.Focused() {
		parts = append(parts, m.renderEditor(styles))
	}
	parts = append(parts, m.renderFooter(styles))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render("sentiboard", styles.Logo),
		bg.Render("session", styles.FaintText) + bg.Spaces(1) + bg.Render(truncateMiddle(m.sessionID, 32), styles.Text),
		bg.Render(m.statusLabel(), m.statusStyle(styles)),
	}
	if m.view.IsOffline() {
		parts = append(parts, bg.Render("OFFLINE", styles.DangerText))
	}
	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

func (m Model) statusLabel() string {
	switch m.status {
	case sentiment.StatusInFlight:
		return "fetching"
	case sentiment.StatusError:
		return "error"
	default:
		if m.view.HasSnapshot {
			return "live"
		}
		return "connecting"
	}
}

func (m Model) statusStyle(styles Styles) lipgloss.Style {
	switch m.status {
	case sentiment.StatusInFlight:
		return styles.InfoText
	case sentiment.StatusError:
		return styles.DangerText
	default:
		if m.view.HasSnapshot {
			return styles.SuccessText
		}
		return styles.WarningText
	}
}

// renderBanner shows the last fetch error while no snapshot is available.
func (m Model) renderBanner(styles Styles) string {
	if m.view.LastError == nil {
		return ""
	}
	text := "Sentiment unavailable, retrying: " + truncate(singleLine(m.view.LastError.Error()), max(20, m.width-40))
	return styles.Banner.Width(m.width).Render(text)
}

func (m Model) renderSuggestions(styles Styles) string {
	title := styles.Text.Bold(true).Render("Suggested replies")
	lines := []string{title}

	if len(m.view.Suggestions) == 0 {
		msg := "No suggestions yet."
		if !m.view.HasSnapshot {
			msg = "Suggestions appear once sentiment is available."
		}
		lines = append(lines, styles.FaintText.Render(msg))
		return styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	width := max(20, m.width-12)
	for i, sg := range m.view.Suggestions {
		marker := "  "
		if i == m.cursor {
			marker = "› "
		}
		text := fmt.Sprintf("%s%d. %s", marker, sg.Index+1, truncate(singleLine(sg.Content), width))
		switch {
		case sg.IsEditing:
			lines = append(lines, styles.Editing.Render(text+"  ✎"))
		case i == m.cursor:
			lines = append(lines, styles.Selected.Render(text))
		default:
			lines = append(lines, styles.Text.Render(text))
		}
	}
	return styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderEditor(styles Styles) string {
	title := styles.AccentText.Bold(true).Render(fmt.Sprintf("Editing suggestion %d", m.view.Edit.Index+1))
	panel := styles.Panel.BorderForeground(lipgloss.Color(m.theme.BorderFocus))
	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.editor.View(),
		m.help.ShortHelpView(m.keys.editorHelp()),
	))
}

func (m Model) renderFooter(styles Styles) string {
	var loc *time.Location
	if m.config != nil {
		loc = m.config.Location
	}
	lines := []string{styles.MutedText.Render(FormatLastUpdated(m.view.LastUpdated, loc))}

	if m.flash != "" {
		style := styles.SuccessText
		if m.flashErr {
			style = styles.DangerText
		}
		lines = append(lines, style.Render(m.flash))
	}
	if !m.editor.Focused() {
		lines = append(lines, m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("Theme: %s  ·  press any key to close", m.theme.Name)))

	return styles.Panel.BorderForeground(lipgloss.Color(m.theme.BorderFocus)).Render(b.String())
}

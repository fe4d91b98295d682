package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sentiboard/internal/sentiment"
	"github.com/five82/sentiboard/internal/state"
)

const (
	gaugeCalm      = "#00ff00"
	gaugeFurious   = "#ff0000"
	gaugeMinWidth  = 10
	gaugeMaxWidth  = 80
	neutralPointer = 0.5
)

func newGauge() progress.Model {
	return progress.New(
		progress.WithGradient(gaugeCalm, gaugeFurious),
		progress.WithoutPercentage(),
		progress.WithWidth(40),
	)
}

// gaugePercent places the pointer for v; without a snapshot it rests mid-scale.
func gaugePercent(v state.View, scale sentiment.Scale) float64 {
	if !v.HasSnapshot {
		return neutralPointer
	}
	return sentiment.Normalize(v.Snapshot.FrustrationScore, scale)
}

// gaugePointer returns a width-wide line with a caret under percent of the bar.
func gaugePointer(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	percent = math.Max(0, math.Min(1, percent))
	pos := int(math.Round(percent * float64(width-1)))
	return strings.Repeat(" ", pos) + "▲" + strings.Repeat(" ", width-pos-1)
}

func gaugeWidth(total int) int {
	return max(gaugeMinWidth, min(gaugeMaxWidth, total-6))
}

func (m Model) renderGauge(styles Styles) string {
	scale := sentiment.ScaleAuto
	if m.config != nil {
		scale = m.config.ScoreScale
	}
	percent := gaugePercent(m.view, scale)

	bar := m.gauge.ViewAs(1)
	pointer := lipgloss.NewStyle().
		Foreground(lipgloss.Color(MoodColor(percent * 10))).
		Render(gaugePointer(percent, m.gauge.Width))

	var caption string
	if m.view.HasSnapshot {
		score := percent * 10
		caption = fmt.Sprintf("%s  %s  %s",
			MoodEmoji(score),
			lipgloss.NewStyle().Foreground(lipgloss.Color(MoodColor(score))).Bold(true).Render(MoodLabel(score)),
			styles.MutedText.Render(fmt.Sprintf("%.1f/10", score)))
	} else {
		caption = styles.FaintText.Render("Waiting for sentiment...")
	}

	title := styles.Text.Bold(true).Render("Customer frustration")
	return styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, bar, pointer, caption))
}

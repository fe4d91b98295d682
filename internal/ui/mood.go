package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sentiboard/internal/sentiment"
)

// MoodEmoji maps a 0-10 frustration score to the customer's mood.
func MoodEmoji(score float64) string {
	switch {
	case score >= 10:
		return "😡"
	case score >= 8:
		return "😠"
	case score >= 6:
		return "😕"
	case score >= 4:
		return "😐"
	case score >= 2:
		return "🙂"
	default:
		return "😃"
	}
}

// moodSteps runs from bright green at 0 to red at 10.
var moodSteps = []struct {
	min   float64
	color string
}{
	{10, "#ff0000"},
	{9, "#ff3333"},
	{8, "#ff6666"},
	{7, "#ff9966"},
	{6, "#ffcc66"},
	{5, "#ffff66"},
	{4, "#ccffcc"},
	{3, "#99ff99"},
	{2, "#66ff66"},
	{1, "#33ff33"},
}

// MoodColor maps a 0-10 frustration score to its accent color.
func MoodColor(score float64) string {
	for _, step := range moodSteps {
		if score >= step.min {
			return step.color
		}
	}
	return "#00ff00"
}

// MoodLabel is the short word shown next to the gauge.
func MoodLabel(score float64) string {
	switch {
	case score >= 10:
		return "Angry"
	case score >= 8:
		return "Very frustrated"
	case score >= 6:
		return "Frustrated"
	case score >= 4:
		return "Neutral"
	case score >= 2:
		return "Satisfied"
	default:
		return "Happy"
	}
}

// RenderAggregate renders one line per session: a colored marker, the mood
// emoji, the session name and its score out of ten.
func RenderAggregate(rows []sentiment.Aggregate, scale sentiment.Scale) string {
	if len(rows) == 0 {
		return "No active sessions.\n"
	}
	scale = batchScale(rows, scale)

	width := 0
	for _, row := range rows {
		width = max(width, lipgloss.Width(aggregateName(row)))
	}

	var b strings.Builder
	for _, row := range rows {
		score := sentiment.TenPoint(row.FrustrationScore, scale)
		marker := lipgloss.NewStyle().Foreground(lipgloss.Color(MoodColor(score))).Render("●")
		name := aggregateName(row)
		pad := strings.Repeat(" ", width-lipgloss.Width(name))
		fmt.Fprintf(&b, "%s %s  %s%s  %4.1f/10\n", marker, MoodEmoji(score), name, pad, score)
	}
	return b.String()
}

// batchScale resolves ScaleAuto once for the whole list, so a single low
// score in a 0-10 batch is not read as a unit-scale maximum.
func batchScale(rows []sentiment.Aggregate, scale sentiment.Scale) sentiment.Scale {
	if scale != sentiment.ScaleAuto {
		return scale
	}
	for _, row := range rows {
		if row.FrustrationScore > 1 {
			return sentiment.ScaleTen
		}
	}
	return sentiment.ScaleUnit
}

func aggregateName(row sentiment.Aggregate) string {
	if name := strings.TrimSpace(row.Name); name != "" {
		return name
	}
	if id := strings.TrimSpace(row.ID); id != "" {
		return id
	}
	return "(unnamed)"
}

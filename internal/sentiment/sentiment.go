// Package sentiment defines the data exchanged between the backend client,
// the polling core, and the presentation layer.
package sentiment

import (
	"math"
	"strings"
	"time"
)

// Suggestion is a suggested agent response. Index is its position within the
// snapshot's suggestion sequence.
type Suggestion struct {
	Content string
	Index   int
}

// Snapshot is the latest sentiment data fetched for a chat session. A snapshot
// is never modified after it is received; the next successful fetch replaces it.
type Snapshot struct {
	FrustrationScore float64
	Suggestions      []Suggestion
	FetchedAt        time.Time
}

// Clone returns a copy that shares no slices with s.
func (s Snapshot) Clone() Snapshot {
	dup := s
	if len(s.Suggestions) == 0 {
		dup.Suggestions = nil
		return dup
	}
	dup.Suggestions = make([]Suggestion, len(s.Suggestions))
	copy(dup.Suggestions, s.Suggestions)
	return dup
}

// Aggregate is a per-session score row from the aggregate endpoint.
type Aggregate struct {
	ID               string
	Name             string
	FrustrationScore float64
}

// FetchStatus tracks the lifecycle of the single outstanding fetch.
type FetchStatus int

const (
	StatusIdle FetchStatus = iota
	StatusInFlight
	StatusError
)

func (s FetchStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusInFlight:
		return "in-flight"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Scale describes how a backend expresses frustration scores.
type Scale int

const (
	// ScaleAuto treats scores at or below 1 as unit scale and anything
	// higher as the 0-10 scale.
	ScaleAuto Scale = iota
	ScaleUnit
	ScaleTen
)

// ParseScale maps a config value to a Scale.
func ParseScale(value string) (Scale, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return ScaleAuto, true
	case "unit", "1":
		return ScaleUnit, true
	case "ten", "10":
		return ScaleTen, true
	default:
		return ScaleAuto, false
	}
}

func (s Scale) String() string {
	switch s {
	case ScaleUnit:
		return "unit"
	case ScaleTen:
		return "ten"
	default:
		return "auto"
	}
}

// Normalize converts score to the 0-1 range using scale.
func Normalize(score float64, scale Scale) float64 {
	if math.IsNaN(score) {
		return 0
	}
	switch scale {
	case ScaleTen:
		score /= 10
	case ScaleAuto:
		if score > 1 {
			score /= 10
		}
	}
	return math.Max(0, math.Min(1, score))
}

// TenPoint converts score to the 0-10 range used by the mood tables.
func TenPoint(score float64, scale Scale) float64 {
	return Normalize(score, scale) * 10
}

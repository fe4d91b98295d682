package backend

import (
	"strings"
	"time"

	"github.com/five82/sentiboard/internal/sentiment"
)

// SentimentResponse mirrors the payload returned by /api/sessions/{id}/sentiment.
type SentimentResponse struct {
	FrustrationScore float64             `json:"frustrationScore"`
	Suggestions      []SuggestionPayload `json:"suggestions"`
}

// SuggestionPayload is a single suggested response.
type SuggestionPayload struct {
	Content string `json:"content"`
}

// AggregateEntry mirrors one row of /api/sentiments. Older backends send the
// score under the custom-field name.
type AggregateEntry struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	FrustrationScore *float64 `json:"frustrationScore"`
	LegacyScore      *float64 `json:"frustrationScore__c"`
}

func (r SentimentResponse) toSnapshot(fetchedAt time.Time) sentiment.Snapshot {
	snap := sentiment.Snapshot{
		FrustrationScore: r.FrustrationScore,
		FetchedAt:        fetchedAt,
	}
	for i, s := range r.Suggestions {
		snap.Suggestions = append(snap.Suggestions, sentiment.Suggestion{
			Content: strings.TrimSpace(s.Content),
			Index:   i,
		})
	}
	return snap
}

func (e AggregateEntry) toAggregate() sentiment.Aggregate {
	agg := sentiment.Aggregate{ID: e.ID, Name: strings.TrimSpace(e.Name)}
	switch {
	case e.FrustrationScore != nil:
		agg.FrustrationScore = *e.FrustrationScore
	case e.LegacyScore != nil:
		agg.FrustrationScore = *e.LegacyScore
	}
	if agg.Name == "" {
		agg.Name = e.ID
	}
	return agg
}

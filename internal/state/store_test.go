package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/sentiboard/internal/sentiment"
)

func snapshotOf(contents ...string) sentiment.Snapshot {
	snap := sentiment.Snapshot{FrustrationScore: 0.4, FetchedAt: time.Now()}
	for i, c := range contents {
		snap.Suggestions = append(snap.Suggestions, sentiment.Suggestion{Content: c, Index: i})
	}
	return snap
}

func editingIndexes(items []SuggestionView) []int {
	var out []int
	for _, it := range items {
		if it.IsEditing {
			out = append(out, it.Index)
		}
	}
	return out
}

func TestStore_OnSnapshotAndViewClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.OnSnapshot(snapshotOf("hello", "sorry"))

	v := s.View()
	if !v.HasSnapshot || len(v.Suggestions) != 2 {
		t.Fatalf("view = %#v, want snapshot with 2 suggestions", v)
	}
	if v.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", v.LastUpdated, before)
	}
	if v.LastError != nil {
		t.Fatalf("LastError = %v, want nil", v.LastError)
	}

	v.Snapshot.Suggestions[0].Content = "mutated"
	v.Suggestions[0].Content = "mutated"
	again := s.View()
	if again.Snapshot.Suggestions[0].Content != "hello" || again.Suggestions[0].Content != "hello" {
		t.Fatalf("View should clone suggestions; got %q", again.Snapshot.Suggestions[0].Content)
	}
}

func TestStore_OnSnapshotRenumbersIndexes(t *testing.T) {
	var s Store
	s.OnSnapshot(sentiment.Snapshot{Suggestions: []sentiment.Suggestion{{Content: "a", Index: 7}, {Content: "b", Index: 7}}})

	got := s.DerivedView()
	if got[0].Index != 0 || got[1].Index != 1 {
		t.Fatalf("indexes = %d,%d want 0,1", got[0].Index, got[1].Index)
	}
}

func TestStore_DerivedViewEmptyWithoutSnapshot(t *testing.T) {
	var s Store
	if got := s.DerivedView(); len(got) != 0 {
		t.Fatalf("DerivedView() = %#v, want empty", got)
	}
}

func TestStore_BeginEditMarksExactlyOne(t *testing.T) {
	contents := []string{"a", "b", "c", "d"}
	for i := range contents {
		var s Store
		s.OnSnapshot(snapshotOf(contents...))
		if err := s.BeginEdit(i); err != nil {
			t.Fatalf("BeginEdit(%d) returned error: %v", i, err)
		}
		got := editingIndexes(s.DerivedView())
		if !reflect.DeepEqual(got, []int{i}) {
			t.Fatalf("editing after BeginEdit(%d) = %v, want [%d]", i, got, i)
		}
	}
}

func TestStore_BeginEditOutOfRange(t *testing.T) {
	cases := []struct {
		name  string
		index int
	}{
		{"past end", 5},
		{"exactly len", 2},
		{"negative", -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var s Store
			s.OnSnapshot(snapshotOf("a", "b"))
			if err := s.BeginEdit(0); err != nil {
				t.Fatalf("BeginEdit(0): %v", err)
			}
			prev := s.EditState()

			err := s.BeginEdit(tc.index)
			if !errors.Is(err, sentiment.ErrOutOfRange) {
				t.Fatalf("BeginEdit(%d) err = %v, want ErrOutOfRange", tc.index, err)
			}
			if got := s.EditState(); got != prev {
				t.Fatalf("EditState = %#v, want unchanged %#v", got, prev)
			}
		})
	}
}

func TestStore_BeginEditWithoutSnapshot(t *testing.T) {
	var s Store
	if err := s.BeginEdit(0); !errors.Is(err, sentiment.ErrOutOfRange) {
		t.Fatalf("BeginEdit(0) err = %v, want ErrOutOfRange", err)
	}
	if s.EditState().Active {
		t.Fatal("EditState should stay inactive")
	}
}

func TestStore_EndEditIdempotent(t *testing.T) {
	var s Store
	s.OnSnapshot(snapshotOf("a", "b", "c"))
	if err := s.BeginEdit(2); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}

	s.EndEdit()
	once := s.DerivedView()
	s.EndEdit()
	twice := s.DerivedView()

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("EndEdit twice = %#v, once = %#v", twice, once)
	}
	if s.EditState().Active {
		t.Fatal("EditState still active after EndEdit")
	}
}

func TestStore_SnapshotNeverChangesEditState(t *testing.T) {
	snapshots := []sentiment.Snapshot{
		snapshotOf("x"),
		snapshotOf(),
		snapshotOf("a", "b", "c", "d", "e"),
		{},
	}
	var s Store
	s.OnSnapshot(snapshotOf("a", "b", "c"))
	if err := s.BeginEdit(2); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	want := s.EditState()

	for i, snap := range snapshots {
		s.OnSnapshot(snap)
		if got := s.EditState(); got != want {
			t.Fatalf("after snapshot %d EditState = %#v, want %#v", i, got, want)
		}
	}
	s.OnFetchError(errors.New("boom"))
	if got := s.EditState(); got != want {
		t.Fatalf("after fetch error EditState = %#v, want %#v", got, want)
	}
}

func TestStore_ShrinkingSnapshotKeepsEditIndex(t *testing.T) {
	var s Store
	s.OnSnapshot(snapshotOf("a", "b", "c"))
	if err := s.BeginEdit(1); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}

	s.OnSnapshot(snapshotOf("a", "b"))
	if got := s.EditState(); !got.Active || got.Index != 1 {
		t.Fatalf("EditState = %#v, want index 1", got)
	}

	s.OnSnapshot(snapshotOf("a"))
	if got := s.EditState(); !got.Active || got.Index != 1 {
		t.Fatalf("EditState = %#v, want index 1", got)
	}
	if got := editingIndexes(s.DerivedView()); len(got) != 0 {
		t.Fatalf("editing = %v, want none once index 1 is gone", got)
	}

	s.OnSnapshot(snapshotOf("a", "b", "c"))
	if got := editingIndexes(s.DerivedView()); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("editing = %v, want [1] once index 1 is back", got)
	}
}

func TestStore_FetchErrorClearsSnapshot(t *testing.T) {
	var s Store
	s.OnSnapshot(snapshotOf("a"))

	origErr := errors.New("boom")
	s.Update(sentiment.Snapshot{}, origErr)

	v := s.View()
	if v.HasSnapshot || len(v.Suggestions) != 0 {
		t.Fatalf("snapshot should be cleared on error, got %#v", v.Snapshot)
	}
	if !errors.Is(v.LastError, sentiment.ErrFetchFailed) || !errors.Is(v.LastError, origErr) {
		t.Fatalf("LastError = %v, want ErrFetchFailed wrapping boom", v.LastError)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	s.Update(sentiment.Snapshot{}, errors.New("fail 1"))
	if v := s.View(); v.ConsecutiveFailures != 1 || v.IsOffline() {
		t.Fatalf("after one failure: failures=%d offline=%v", v.ConsecutiveFailures, v.IsOffline())
	}

	s.Update(sentiment.Snapshot{}, errors.New("fail 2"))
	if v := s.View(); v.ConsecutiveFailures != 2 || !v.IsOffline() {
		t.Fatalf("after two failures: failures=%d offline=%v", v.ConsecutiveFailures, v.IsOffline())
	}

	s.Update(snapshotOf("ok"), nil)
	if v := s.View(); v.ConsecutiveFailures != 0 || v.IsOffline() {
		t.Fatalf("after success: failures=%d offline=%v", v.ConsecutiveFailures, v.IsOffline())
	}
}

func TestStore_CloseDiscardsResults(t *testing.T) {
	var s Store
	s.OnSnapshot(snapshotOf("a"))
	s.Close()

	s.Update(snapshotOf("b", "c"), nil)
	s.Update(sentiment.Snapshot{}, errors.New("late"))

	v := s.View()
	if len(v.Suggestions) != 1 || v.Suggestions[0].Content != "a" || v.LastError != nil {
		t.Fatalf("closed store changed: %#v", v)
	}
}

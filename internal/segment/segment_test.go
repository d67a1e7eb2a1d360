package segment

import (
	"math"
	"testing"
)

func TestExtract_FiltersAndCaps(t *testing.T) {
	markers := []RawMarker{
		{StartMillis: 10000, DurationMillis: 5000, Intensity: 0.5},
		{StartMillis: 200000, DurationMillis: 8000, Intensity: 0.9},
		{StartMillis: 50000, DurationMillis: 4000, Intensity: 0.1}, // below threshold
		{StartMillis: 90000, DurationMillis: 120000, Intensity: 0.7},
	}

	segs := Extract(markers, 0.4, 60)
	if len(segs) != 3 {
		t.Fatalf("Extract returned %d segments, want 3", len(segs))
	}

	// Descending by score.
	if segs[0].Score != 0.9 || segs[1].Score != 0.7 || segs[2].Score != 0.5 {
		t.Errorf("scores out of order: %v, %v, %v", segs[0].Score, segs[1].Score, segs[2].Score)
	}

	// 120s marker capped to the 60s maximum.
	if segs[1].Duration != 60 {
		t.Errorf("capped duration = %v, want 60", segs[1].Duration)
	}

	for _, s := range segs {
		if s.Score < 0.4 {
			t.Errorf("segment with score %v below threshold retained", s.Score)
		}
		if s.Duration > 60 {
			t.Errorf("segment duration %v exceeds maximum", s.Duration)
		}
		if s.Start < 0 {
			t.Errorf("negative segment start %v", s.Start)
		}
	}
}

func TestExtract_StableOnEqualScores(t *testing.T) {
	markers := []RawMarker{
		{StartMillis: 1000, DurationMillis: 5000, Intensity: 0.6},
		{StartMillis: 2000, DurationMillis: 5000, Intensity: 0.6},
		{StartMillis: 3000, DurationMillis: 5000, Intensity: 0.6},
	}

	segs := Extract(markers, 0.4, 60)
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	for i, wantStart := range []float64{1, 2, 3} {
		if segs[i].Start != wantStart {
			t.Errorf("segment %d start = %v, want %v (input order not preserved)", i, segs[i].Start, wantStart)
		}
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	if segs := Extract(nil, 0.4, 60); len(segs) != 0 {
		t.Errorf("Extract(nil) = %v, want empty", segs)
	}
	if segs := Extract([]RawMarker{}, 0.4, 60); len(segs) != 0 {
		t.Errorf("Extract(empty) = %v, want empty", segs)
	}
}

func TestExtract_DropsMalformedMarkers(t *testing.T) {
	markers := []RawMarker{
		{StartMillis: -5000, DurationMillis: 5000, Intensity: 0.8},
		{StartMillis: 5000, DurationMillis: -1, Intensity: 0.8},
		{StartMillis: 5000, DurationMillis: 5000, Intensity: 0.8},
	}
	segs := Extract(markers, 0.4, 60)
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	if segs[0].Start != 5 {
		t.Errorf("surviving segment start = %v, want 5", segs[0].Start)
	}
}

func TestSchedule_PadsAndClamps(t *testing.T) {
	// Heatmap scenario: two markers, ranked 0.9 first.
	markers := []RawMarker{
		{StartMillis: 10000, DurationMillis: 5000, Intensity: 0.5},
		{StartMillis: 200000, DurationMillis: 8000, Intensity: 0.9},
	}
	segs := Extract(markers, 0.4, 60)
	wins := Schedule(segs, 300, 10, 0)

	if len(wins) != 2 {
		t.Fatalf("got %d windows, want 2", len(wins))
	}

	// Highest score first: [190, 218].
	if wins[0].Start != 190 || wins[0].End != 218 {
		t.Errorf("window 1 = [%v, %v], want [190, 218]", wins[0].Start, wins[0].End)
	}
	// Second clamps at zero: [0, 25].
	if wins[1].Start != 0 || wins[1].End != 25 {
		t.Errorf("window 2 = [%v, %v], want [0, 25]", wins[1].Start, wins[1].End)
	}

	for i, w := range wins {
		if w.Index != i+1 {
			t.Errorf("window %d index = %d, want %d", i, w.Index, i+1)
		}
		if w.Start < 0 || w.End > 300 {
			t.Errorf("window %d [%v, %v] outside source bounds", i, w.Start, w.End)
		}
	}
}

func TestSchedule_RejectsShortWindows(t *testing.T) {
	segs := []Segment{
		{Start: 299.0, Duration: 10, Score: 0.9}, // clamps to [299, 300): too short
		{Start: 100, Duration: 10, Score: 0.5},
	}
	wins := Schedule(segs, 300, 0, 0)
	if len(wins) != 1 {
		t.Fatalf("got %d windows, want 1", len(wins))
	}
	// The rejected window must not consume an index.
	if wins[0].Index != 1 {
		t.Errorf("surviving window index = %d, want 1", wins[0].Index)
	}
	if wins[0].Duration() < MinClipLength {
		t.Errorf("window duration %v below minimum", wins[0].Duration())
	}
}

func TestSchedule_Limit(t *testing.T) {
	var segs []Segment
	for i := 0; i < 20; i++ {
		segs = append(segs, Segment{Start: float64(i * 30), Duration: 10, Score: 0.5})
	}
	wins := Schedule(segs, 3600, 5, 4)
	if len(wins) != 4 {
		t.Errorf("got %d windows, want limit of 4", len(wins))
	}
}

func TestSchedule_ClampNeverExceedsBounds(t *testing.T) {
	segs := []Segment{
		{Start: 0, Duration: 60, Score: 0.9},
		{Start: 3590, Duration: 60, Score: 0.8},
	}
	for _, w := range Schedule(segs, 3600, 10, 0) {
		if w.Start < 0 {
			t.Errorf("window start %v below zero", w.Start)
		}
		if w.End > 3600 {
			t.Errorf("window end %v beyond total duration", w.End)
		}
		if math.Signbit(w.Duration()) {
			t.Errorf("negative window duration %v", w.Duration())
		}
	}
}

// Package segment turns the raw "most replayed" heatmap signal into a
// ranked, padded worklist of clip windows. Extraction and scheduling are
// pure functions; all I/O stays with the callers.
package segment

import "sort"

// RawMarker is one heatmap record as decoded from the watch page.
// Markers are produced externally and never mutated here.
type RawMarker struct {
	StartMillis    float64
	DurationMillis float64
	Intensity      float64 // normalized to [0,1]
}

// Segment is a normalized, score-filtered candidate clip window.
type Segment struct {
	Start    float64 // seconds from the start of the source video
	Duration float64 // seconds, capped at the configured maximum
	Score    float64 // normalized intensity, retained for ranking
}

// Extract filters out markers below minScore, caps each duration at
// maxDuration and returns segments ordered by descending score. The sort
// is stable: equal scores keep their input order, which decides priority
// under the clip quota. Empty or fully-filtered input yields an empty
// slice, not an error; callers treat "no segments" as a normal outcome.
func Extract(markers []RawMarker, minScore, maxDuration float64) []Segment {
	segs := make([]Segment, 0, len(markers))
	for _, m := range markers {
		if m.Intensity < minScore {
			continue
		}
		if m.StartMillis < 0 || m.DurationMillis < 0 {
			continue
		}
		d := m.DurationMillis / 1000
		if d > maxDuration {
			d = maxDuration
		}
		segs = append(segs, Segment{
			Start:    m.StartMillis / 1000,
			Duration: d,
			Score:    m.Intensity,
		})
	}
	sort.SliceStable(segs, func(i, j int) bool {
		return segs[i].Score > segs[j].Score
	})
	return segs
}

package segment

import "math"

// MinClipLength is the shortest admissible window in seconds. Padded
// windows that clamp below this are rejected rather than scheduled.
const MinClipLength = 3.0

// Window binds a segment to absolute download/crop bounds in source time.
// Index is 1-based in rank order and namespaces the job's temporary files;
// it is assigned once and never renumbered after later rejections.
type Window struct {
	Index int
	Start float64
	End   float64
	Score float64
}

// Duration returns the window length in seconds.
func (w Window) Duration() float64 { return w.End - w.Start }

// Schedule pads each ranked segment symmetrically, clamps it to
// [0, totalDuration] and emits admissible windows in the given order.
// A window shorter than MinClipLength is rejected and consumes no index.
// limit bounds the number of emitted windows; limit <= 0 means no bound
// (the run controller enforces the success quota itself, since a failed
// job does not consume a quota slot). Overlapping windows are deliberately
// left un-merged; the ranking already biases toward the most salient
// parts of the video.
func Schedule(segs []Segment, totalDuration, padding float64, limit int) []Window {
	var wins []Window
	for _, s := range segs {
		if limit > 0 && len(wins) >= limit {
			break
		}
		start := math.Max(0, s.Start-padding)
		end := math.Min(s.Start+s.Duration+padding, totalDuration)
		if end-start < MinClipLength {
			continue
		}
		wins = append(wins, Window{
			Index: len(wins) + 1,
			Start: start,
			End:   end,
			Score: s.Score,
		})
	}
	return wins
}

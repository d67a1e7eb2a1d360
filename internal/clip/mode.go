// Package clip drives the per-segment pipeline: acquire the padded window,
// crop it to a vertical frame, optionally burn in subtitles and a
// watermark, and commit the artifact. Each job is isolated: a failure
// aborts only that job and its intermediate files are always removed.
package clip

import (
	"fmt"

	"github.com/replaycut/replaycut/internal/media"
)

// Output geometry. Sources are rescaled to a fixed intermediate height and
// cropped to a 9:16 frame. Split layouts stack a centred primary band over
// a corner-cropped secondary band (gameplay over facecam).
const (
	scaleHeight      = 1280
	outputWidth      = 720
	outputHeight     = 1280
	topBandHeight    = 960
	bottomBandHeight = 320
)

// Mode selects the geometric layout of the vertical crop. The set is
// closed: each mode owns its filter-graph construction, so adding a
// layout is a change local to this file.
type Mode int

const (
	ModeDefault Mode = iota
	ModeSplitLeft
	ModeSplitRight
)

// ParseMode maps a crop mode selector string to its Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "default":
		return ModeDefault, nil
	case "split_left":
		return ModeSplitLeft, nil
	case "split_right":
		return ModeSplitRight, nil
	default:
		return ModeDefault, fmt.Errorf("unknown crop mode %q", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeSplitLeft:
		return "split_left"
	case ModeSplitRight:
		return "split_right"
	default:
		return "default"
	}
}

// transformSpec builds the crop pass for this layout.
func (m Mode) transformSpec(input, output string) media.EncodeSpec {
	spec := media.EncodeSpec{Inputs: []string{input}, Output: output}

	switch m {
	case ModeSplitLeft:
		spec.FilterComplex = splitGraph(0)
	case ModeSplitRight:
		spec.FilterComplex = splitGraph(1)
	default:
		spec.VideoFilter = fmt.Sprintf(
			"scale=-2:%d,crop=%d:%d:(iw-%d)/2:(ih-%d)/2",
			scaleHeight, outputWidth, outputHeight, outputWidth, outputHeight,
		)
	}
	return spec
}

// splitGraph stacks a centred top band over a bottom band anchored to the
// given corner (0 = left, 1 = right) of the same rescaled source.
func splitGraph(corner int) string {
	bottomX := "0"
	if corner == 1 {
		bottomX = fmt.Sprintf("iw-%d", outputWidth)
	}
	return fmt.Sprintf(
		"scale=-2:%d[scaled];"+
			"[scaled]split=2[s1][s2];"+
			"[s1]crop=%d:%d:(iw-%d)/2:(ih-%d)/2[top];"+
			"[s2]crop=%d:%d:%s:ih-%d[bottom];"+
			"[top][bottom]vstack=inputs=2[out]",
		scaleHeight,
		outputWidth, topBandHeight, outputWidth, outputHeight,
		outputWidth, bottomBandHeight, bottomX, bottomBandHeight,
	)
}

package clip

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/replaycut/replaycut/internal/media"
)

// Fixed burn-in style: outlined white text anchored above the bottom edge,
// so captions stay legible over arbitrary video content.
const subtitleStyle = "FontName=Arial,FontSize=12,Bold=1,PrimaryColour=&HFFFFFF," +
	"OutlineColour=&H000000,BorderStyle=1,Outline=2,Shadow=1,MarginV=100"

// WatermarkStyle places a watermark image relative to the bottom-right
// corner, scaled to a fraction of the frame width.
type WatermarkStyle struct {
	WidthPercent float64
	PaddingX     int
	PaddingY     int
}

// enrichPlan is the decision table for the optional enrichment pass,
// keyed by (subtitle applied, watermark applied):
//
//	neither   -> nil: the transformed file is renamed into place untouched
//	subtitle  -> single-input subtitles burn-in
//	watermark -> two-input overlay graph
//	both      -> combined burn-in + overlay in one pass
//
// Audio is always copied here: no enrichment filter touches it.
func enrichPlan(cropped, subtitlePath, watermarkPath string, wm WatermarkStyle, staged string) *media.EncodeSpec {
	subtitleApplied := subtitlePath != ""
	watermarkApplied := watermarkPath != ""

	switch {
	case subtitleApplied && watermarkApplied:
		return &media.EncodeSpec{
			Inputs: []string{cropped, watermarkPath},
			FilterComplex: fmt.Sprintf("[0:v]%s[sub];%s;[sub][wm]overlay=%s[out]",
				subtitleFilter(subtitlePath), watermarkScale(wm), watermarkAnchor(wm)),
			AudioCopy: true,
			Output:    staged,
		}

	case subtitleApplied:
		return &media.EncodeSpec{
			Inputs:      []string{cropped},
			VideoFilter: subtitleFilter(subtitlePath),
			AudioCopy:   true,
			Output:      staged,
		}

	case watermarkApplied:
		return &media.EncodeSpec{
			Inputs: []string{cropped, watermarkPath},
			FilterComplex: fmt.Sprintf("%s;[0:v][wm]overlay=%s[out]",
				watermarkScale(wm), watermarkAnchor(wm)),
			AudioCopy: true,
			Output:    staged,
		}

	default:
		return nil
	}
}

// subtitleFilter builds the burn-in filter. The path is embedded inside
// the filter expression, so separators and colons must be escaped.
func subtitleFilter(srtPath string) string {
	p := srtPath
	if abs, err := filepath.Abs(srtPath); err == nil {
		p = abs
	}
	p = strings.ReplaceAll(filepath.ToSlash(p), ":", `\:`)
	return fmt.Sprintf("subtitles='%s':force_style='%s'", p, subtitleStyle)
}

func watermarkScale(wm WatermarkStyle) string {
	return fmt.Sprintf("[1:v]scale=iw*%s:-1[wm]", strconv.FormatFloat(wm.WidthPercent, 'f', -1, 64))
}

func watermarkAnchor(wm WatermarkStyle) string {
	return fmt.Sprintf("W-w-%d:H-h-%d", wm.PaddingX, wm.PaddingY)
}

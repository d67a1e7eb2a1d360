package clip

import (
	"strings"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"default", ModeDefault, false},
		{"split_left", ModeSplitLeft, false},
		{"split_right", ModeSplitRight, false},
		{"", ModeDefault, true},
		{"split_middle", ModeDefault, true},
		{"DEFAULT", ModeDefault, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMode_String_RoundTrip(t *testing.T) {
	for _, m := range []Mode{ModeDefault, ModeSplitLeft, ModeSplitRight} {
		back, err := ParseMode(m.String())
		if err != nil || back != m {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", m.String(), back, err, m)
		}
	}
}

func TestTransformSpec_Default(t *testing.T) {
	spec := ModeDefault.transformSpec("in.mp4", "out.mp4")
	if spec.FilterComplex != "" {
		t.Error("default mode should use a simple video filter, not a complex graph")
	}
	want := "scale=-2:1280,crop=720:1280:(iw-720)/2:(ih-1280)/2"
	if spec.VideoFilter != want {
		t.Errorf("VideoFilter = %q, want %q", spec.VideoFilter, want)
	}
	if spec.AudioCopy {
		t.Error("transform pass must re-encode audio")
	}
}

func TestTransformSpec_SplitLayouts(t *testing.T) {
	left := ModeSplitLeft.transformSpec("in.mp4", "out.mp4")
	right := ModeSplitRight.transformSpec("in.mp4", "out.mp4")

	for name, spec := range map[string]string{"left": left.FilterComplex, "right": right.FilterComplex} {
		if !strings.Contains(spec, "split=2") {
			t.Errorf("%s graph missing source split: %s", name, spec)
		}
		if !strings.Contains(spec, "crop=720:960:(iw-720)/2:(ih-1280)/2[top]") {
			t.Errorf("%s graph missing centred top band: %s", name, spec)
		}
		if !strings.Contains(spec, "vstack=inputs=2[out]") {
			t.Errorf("%s graph missing vertical stack: %s", name, spec)
		}
	}

	// The bottom band anchors to the requested corner.
	if !strings.Contains(left.FilterComplex, "crop=720:320:0:ih-320[bottom]") {
		t.Errorf("left graph bottom band not left-anchored: %s", left.FilterComplex)
	}
	if !strings.Contains(right.FilterComplex, "crop=720:320:iw-720:ih-320[bottom]") {
		t.Errorf("right graph bottom band not right-anchored: %s", right.FilterComplex)
	}
}

func TestSubtitleFilter_EscapesPath(t *testing.T) {
	f := subtitleFilter("/tmp/clips/temp_1.srt")
	if !strings.HasPrefix(f, "subtitles='") {
		t.Errorf("filter = %q", f)
	}
	if strings.Contains(f, `\\`) {
		t.Errorf("backslashes leaked into filter: %q", f)
	}
	if !strings.Contains(f, "force_style='FontName=Arial") {
		t.Errorf("fixed style missing: %q", f)
	}
}

func TestEnrichPlan_DecisionTable(t *testing.T) {
	wm := WatermarkStyle{WidthPercent: 0.2, PaddingX: 20, PaddingY: 20}

	if plan := enrichPlan("c.mp4", "", "", wm, "s.mp4"); plan != nil {
		t.Error("no overlays: plan should be nil (plain rename)")
	}

	sub := enrichPlan("c.mp4", "t.srt", "", wm, "s.mp4")
	if sub == nil || sub.VideoFilter == "" || len(sub.Inputs) != 1 {
		t.Errorf("subtitle-only plan wrong: %+v", sub)
	}

	wmOnly := enrichPlan("c.mp4", "", "wm.png", wm, "s.mp4")
	if wmOnly == nil || wmOnly.FilterComplex == "" || len(wmOnly.Inputs) != 2 {
		t.Errorf("watermark-only plan wrong: %+v", wmOnly)
	}

	both := enrichPlan("c.mp4", "t.srt", "wm.png", wm, "s.mp4")
	if both == nil || !strings.Contains(both.FilterComplex, "[sub][wm]overlay") {
		t.Errorf("combined plan wrong: %+v", both)
	}

	// Every enrichment pass copies audio; none of the filters touch it.
	for name, plan := range map[string]bool{"subtitle": sub.AudioCopy, "watermark": wmOnly.AudioCopy, "both": both.AudioCopy} {
		if !plan {
			t.Errorf("%s plan must copy audio", name)
		}
	}
}

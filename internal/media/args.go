package media

import (
	"fmt"
	"strconv"
)

// Format selection: best mp4 video capped at 1080p plus m4a audio, with
// progressively weaker fallbacks for videos that offer neither.
const downloadFormat = "bestvideo[height<=1080][ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"

// Fixed encoder settings for every video pass. Video is always re-encoded
// because cropping and overlays alter pixel data.
const (
	videoCodec   = "libx264"
	videoPreset  = "ultrafast"
	videoCRF     = "26"
	audioCodec   = "aac"
	audioBitrate = "128k"
)

// BuildDownloadArgs assembles the yt-dlp invocation that extracts exactly
// [start, end] of the source video into destPath. The range is handled by
// ffmpeg acting as yt-dlp's downloader, so only those bytes are fetched.
func BuildDownloadArgs(videoID string, start, end float64, destPath string) []string {
	return []string{
		"--force-ipv4",
		"--quiet", "--no-warnings",
		"--downloader", "ffmpeg",
		"--downloader-args",
		fmt.Sprintf("ffmpeg_i:-ss %s -to %s -hide_banner -loglevel error", formatSeconds(start), formatSeconds(end)),
		"-f", downloadFormat,
		"-o", destPath,
		fmt.Sprintf("https://youtu.be/%s", videoID),
	}
}

// EncodeSpec describes one ffmpeg pass. Exactly one of VideoFilter and
// FilterComplex may be set; with FilterComplex the graph must label its
// video output [out].
type EncodeSpec struct {
	Inputs        []string
	VideoFilter   string
	FilterComplex string
	// AudioCopy passes audio through untouched. Used whenever no
	// audio-affecting filter runs, to avoid a lossy re-encode.
	AudioCopy bool
	Output    string
}

// BuildEncodeArgs assembles the ffmpeg invocation for spec.
func BuildEncodeArgs(spec EncodeSpec) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	for _, in := range spec.Inputs {
		args = append(args, "-i", in)
	}

	switch {
	case spec.FilterComplex != "":
		args = append(args,
			"-filter_complex", spec.FilterComplex,
			"-map", "[out]", "-map", "0:a?",
		)
	case spec.VideoFilter != "":
		args = append(args, "-vf", spec.VideoFilter)
	}

	args = append(args, "-c:v", videoCodec, "-preset", videoPreset, "-crf", videoCRF)

	if spec.AudioCopy {
		args = append(args, "-c:a", "copy")
	} else {
		args = append(args, "-c:a", audioCodec, "-b:a", audioBitrate)
	}

	return append(args, spec.Output)
}

// formatSeconds renders a time offset without trailing zeros.
func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}

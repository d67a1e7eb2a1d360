package media

import (
	"fmt"
	"os/exec"
)

const (
	YtdlpInstallURL   = "https://github.com/yt-dlp/yt-dlp#installation"
	FfmpegInstallURL  = "https://ffmpeg.org/download.html"
	WhisperInstallURL = "https://github.com/openai/whisper#setup"
)

// DependencyError reports a missing external tool.
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// Probe is the availability report for one external tool.
type Probe struct {
	Name     string
	Path     string
	Optional bool
	Err      error
}

// Available reports whether the tool resolved.
func (p Probe) Available() bool { return p.Err == nil }

// Doctor checks every external tool the pipeline can invoke. yt-dlp and
// ffmpeg are required; whisper only enables subtitle generation.
func Doctor(ytdlpPath, ffmpegPath, whisperPath string) []Probe {
	return []Probe{
		probe("yt-dlp", ytdlpPath, YtdlpInstallURL, false),
		probe("ffmpeg", ffmpegPath, FfmpegInstallURL, false),
		probe("whisper", whisperPath, WhisperInstallURL, true),
	}
}

func probe(name, preferred, installURL string, optional bool) Probe {
	lookup := preferred
	if lookup == "" {
		lookup = name
	}
	path, err := exec.LookPath(lookup)
	if err != nil {
		return Probe{
			Name:     name,
			Optional: optional,
			Err:      &DependencyError{Name: name, InstallURL: installURL},
		}
	}
	return Probe{Name: name, Path: path, Optional: optional}
}

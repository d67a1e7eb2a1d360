// Package subtitle produces subtitle tracks for finished clips. Absence
// of a subtitle is never a failure: callers degrade to no burn-in.
package subtitle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrUnavailable signals that no subtitle could be produced for a clip.
// It disables burn-in for that clip only.
var ErrUnavailable = errors.New("subtitle unavailable")

// Generator produces a subtitle-track artifact for a local media file.
type Generator interface {
	// Generate writes an SRT file for mediaPath to outPath.
	// Returns ErrUnavailable (possibly wrapped) when no track can be made.
	Generate(ctx context.Context, mediaPath, outPath string) error
}

// WhisperGenerator shells out to the whisper CLI for speech transcription.
type WhisperGenerator struct {
	path    string // resolved whisper binary
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

const defaultModel = "base"

// NewWhisperGenerator resolves the whisper binary and returns a generator.
// The caller decides what to do when whisper is missing; typically the run
// proceeds with subtitles disabled.
func NewWhisperGenerator(preferred string, timeout time.Duration, logger *slog.Logger) (*WhisperGenerator, error) {
	lookup := preferred
	if lookup == "" {
		lookup = "whisper"
	}
	path, err := exec.LookPath(lookup)
	if err != nil {
		return nil, fmt.Errorf("whisper not found: %w", err)
	}
	return &WhisperGenerator{
		path:    path,
		model:   defaultModel,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Generate transcribes mediaPath and moves the resulting SRT to outPath.
func (g *WhisperGenerator) Generate(ctx context.Context, mediaPath, outPath string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	outDir := filepath.Dir(outPath)
	args := []string{
		mediaPath,
		"--model", g.model,
		"--output_format", "srt",
		"--output_dir", outDir,
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, g.path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdout = &stderr

	if err := cmd.Run(); err != nil {
		g.logger.Info("subtitle generation failed, continuing without",
			"media", filepath.Base(mediaPath),
			"error", err,
			"output_tail", tail(stderr.String(), 512),
		)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Whisper names its output after the input file.
	produced := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))+".srt")
	if produced != outPath {
		if err := os.Rename(produced, outPath); err != nil {
			return fmt.Errorf("%w: move transcript: %v", ErrUnavailable, err)
		}
	}

	if info, err := os.Stat(outPath); err != nil || info.Size() == 0 {
		return fmt.Errorf("%w: empty transcript", ErrUnavailable)
	}

	g.logger.Info("subtitle generated",
		"media", filepath.Base(mediaPath),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

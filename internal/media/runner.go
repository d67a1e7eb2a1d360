// Package media executes the external yt-dlp and ffmpeg tools behind a
// narrow interface so the clip pipeline can be tested with fakes. It is
// the single subprocess boundary of the program.
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"
)

const (
	maxStderrBytes = 8 * 1024 // 8 KB tail of stderr kept for diagnostics
)

// Runner is the external media tool contract consumed by the clip pipeline.
type Runner interface {
	// DownloadRange materializes the [start, end] window of the source
	// video into destPath.
	DownloadRange(ctx context.Context, videoID string, start, end float64, destPath string) error

	// Encode runs one ffmpeg pass described by spec.
	Encode(ctx context.Context, spec EncodeSpec) error
}

// Config holds the tool runner's configuration.
type Config struct {
	YtdlpPath        string // path to yt-dlp binary; empty = auto-detect
	FFmpegPath       string // path to ffmpeg binary; empty = auto-detect
	DownloadTimeout  time.Duration
	TransformTimeout time.Duration
	Logger           *slog.Logger
}

// Tools is the production Runner backed by yt-dlp and ffmpeg subprocesses.
type Tools struct {
	cfg    Config
	ytdlp  string // resolved yt-dlp path
	ffmpeg string // resolved ffmpeg path
}

// NewTools creates a Tools runner, resolving both binaries up front.
func NewTools(cfg Config) (*Tools, error) {
	ytdlp, err := resolveTool("yt-dlp", cfg.YtdlpPath)
	if err != nil {
		return nil, err
	}
	ffmpeg, err := resolveTool("ffmpeg", cfg.FFmpegPath)
	if err != nil {
		return nil, err
	}

	cfg.Logger.Info("media tools resolved", "yt_dlp", ytdlp, "ffmpeg", ffmpeg)
	return &Tools{cfg: cfg, ytdlp: ytdlp, ffmpeg: ffmpeg}, nil
}

// ToolError is a failed subprocess invocation, carrying the tool's
// diagnostic output for job-level logging.
type ToolError struct {
	Tool       string
	ExitCode   int
	StderrTail string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s exited %d: %s", e.Tool, e.ExitCode, e.StderrTail)
}

// DownloadRange asks yt-dlp to extract exactly the requested time range,
// using ffmpeg as the ranged downloader. The destination file must
// materialize for the call to succeed.
func (t *Tools) DownloadRange(ctx context.Context, videoID string, start, end float64, destPath string) error {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.DownloadTimeout)
	defer cancel()

	args := BuildDownloadArgs(videoID, start, end, destPath)
	if err := t.run(ctx, "yt-dlp", t.ytdlp, args); err != nil {
		return err
	}

	if _, err := os.Stat(destPath); err != nil {
		return &ToolError{Tool: "yt-dlp", ExitCode: 0, StderrTail: "download produced no output file"}
	}
	return nil
}

// Encode runs a single ffmpeg pass.
func (t *Tools) Encode(ctx context.Context, spec EncodeSpec) error {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.TransformTimeout)
	defer cancel()

	return t.run(ctx, "ffmpeg", t.ffmpeg, BuildEncodeArgs(spec))
}

// run is the core subprocess execution helper.
func (t *Tools) run(ctx context.Context, tool, path string, args []string) error {
	start := time.Now()

	cmd := exec.CommandContext(ctx, path, args...)

	// Capture stderr with bounded buffer
	var stderrBuf bytes.Buffer
	cmd.Stderr = io.Writer(&limitedWriter{w: &stderrBuf, limit: maxStderrBytes})
	cmd.Stdout = io.Discard

	t.cfg.Logger.Debug("executing media tool", "tool", tool, "args", args)

	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		tail := stderrBuf.String()
		t.cfg.Logger.Warn("media tool failed",
			"tool", tool,
			"exit_code", exitCode,
			"duration_ms", elapsed.Milliseconds(),
			"stderr_tail", truncate(tail, 512),
		)
		return &ToolError{Tool: tool, ExitCode: exitCode, StderrTail: tail}
	}

	t.cfg.Logger.Info("media tool succeeded",
		"tool", tool,
		"duration_ms", elapsed.Milliseconds(),
	)
	return nil
}

// resolveTool finds a usable binary, preferring an explicit path.
func resolveTool(name, preferred string) (string, error) {
	if preferred != "" {
		if p, err := exec.LookPath(preferred); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("configured %s %q not found", name, preferred)
	}
	p, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found on PATH", name)
	}
	return p, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return "..." + s[len(s)-maxLen:]
}

// limitedWriter is an io.Writer that keeps only the last `limit` bytes.
type limitedWriter struct {
	w     *bytes.Buffer
	limit int
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)
	lw.w.Write(p)
	if lw.w.Len() > lw.limit {
		// Keep only the tail
		b := lw.w.Bytes()
		lw.w.Reset()
		lw.w.Write(b[len(b)-lw.limit:])
	}
	return n, nil
}

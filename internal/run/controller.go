// Package run drives a full extraction run: resolve the locator, fetch
// the heatmap, extract and schedule segments, execute clip jobs against
// the quota, and report a summary. Only locator resolution and an empty
// segment list are run-fatal; every job failure stays inside its job.
package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/replaycut/replaycut/internal/clip"
	"github.com/replaycut/replaycut/internal/config"
	"github.com/replaycut/replaycut/internal/logging"
	"github.com/replaycut/replaycut/internal/segment"
	"github.com/replaycut/replaycut/internal/youtube"
)

// ErrNoSegments reports that the heatmap produced nothing usable. It ends
// the run but is a normal "nothing to do" outcome, not a fault.
var ErrNoSegments = errors.New("no high-engagement segments found")

// WorkDirName is the subdirectory of the output directory holding
// job-scoped intermediate files. Keeping it on the same filesystem makes
// the final commit a plain rename.
const WorkDirName = ".work"

// MarkerSource fetches raw heatmap markers; it never fails the caller.
type MarkerSource interface {
	FetchMarkers(ctx context.Context, videoID string) []segment.RawMarker
}

// DurationSource fetches the total source duration in seconds; it falls
// back to a default instead of failing.
type DurationSource interface {
	FetchDuration(ctx context.Context, videoID string) float64
}

// Processor executes one clip job. The production implementation is
// clip.Pipeline.
type Processor interface {
	Process(ctx context.Context, job clip.Job, commit clip.CommitFunc) (int, error)
}

// Summary is the reportable outcome of one run.
type Summary struct {
	VideoID   string
	Markers   int
	Segments  int
	Windows   int
	Attempted int
	Committed int
	OutputDir string
}

// Controller owns the run lifecycle and the ordinal allocator. No other
// mutable state crosses job boundaries.
type Controller struct {
	cfg       config.Config
	markers   MarkerSource
	durations DurationSource
	processor Processor
	logger    *slog.Logger
}

// New creates a run controller. The configuration is threaded down
// explicitly; there is no process-wide state.
func New(cfg config.Config, markers MarkerSource, durations DurationSource, processor Processor, logger *slog.Logger) *Controller {
	return &Controller{
		cfg:       cfg,
		markers:   markers,
		durations: durations,
		processor: processor,
		logger:    logging.WithComponent(logger, "controller"),
	}
}

// Run executes a full extraction for the given locator.
func (c *Controller) Run(ctx context.Context, rawURL string) (Summary, error) {
	videoID, err := youtube.ParseVideoID(rawURL)
	if err != nil {
		return Summary{}, err
	}
	log := logging.WithVideoID(c.logger, videoID)

	summary := Summary{VideoID: videoID, OutputDir: c.cfg.OutputDir}

	markers := c.markers.FetchMarkers(ctx, videoID)
	summary.Markers = len(markers)

	segs := segment.Extract(markers, c.cfg.MinScore, c.cfg.MaxClipDuration)
	summary.Segments = len(segs)
	if len(segs) == 0 {
		return summary, ErrNoSegments
	}

	total := c.durations.FetchDuration(ctx, videoID)
	log.Info("segments extracted", "segments", len(segs), "total_duration_s", total)

	// The worklist is not truncated to the quota: a failed job does not
	// consume a quota slot, so later windows may still be attempted.
	windows := segment.Schedule(segs, total, c.cfg.Padding, 0)
	summary.Windows = len(windows)
	if len(windows) == 0 {
		return summary, ErrNoSegments
	}

	if err := os.MkdirAll(filepath.Join(c.cfg.OutputDir, WorkDirName), 0755); err != nil {
		return summary, fmt.Errorf("cannot create output dir: %w", err)
	}

	tmpl := clip.Job{
		VideoID:       videoID,
		BurnSubtitle:  c.cfg.Subtitles,
		WatermarkPath: c.watermarkPath(log),
	}
	if tmpl.Mode, err = clip.ParseMode(c.cfg.CropMode); err != nil {
		return summary, err
	}

	alloc := newAllocator(c.cfg.OutputDir, c.cfg.MaxClips)
	summary.Attempted = c.execute(ctx, windows, tmpl, alloc, log)
	summary.Committed = alloc.committed()

	// Best effort: the work dir is empty unless a job was interrupted
	// mid-cleanup.
	os.Remove(filepath.Join(c.cfg.OutputDir, WorkDirName))

	log.Info("run finished",
		"windows", summary.Windows,
		"attempted", summary.Attempted,
		"committed", summary.Committed,
	)
	return summary, nil
}

// watermarkPath verifies the configured watermark once per run. A missing
// file disables watermarking for the whole run with a single warning.
func (c *Controller) watermarkPath(log *slog.Logger) string {
	if c.cfg.WatermarkPath == "" {
		return ""
	}
	if _, err := os.Stat(c.cfg.WatermarkPath); err != nil {
		log.Warn("watermark file not found, proceeding without watermark",
			"path", logging.SanitizePath(c.cfg.WatermarkPath))
		return ""
	}
	return c.cfg.WatermarkPath
}

// execute runs jobs through a bounded worker pool, sized 1 by default,
// which preserves the sequential ranked order exactly. Workers pull
// windows in rank order and stop dispatching once the quota fills.
func (c *Controller) execute(ctx context.Context, windows []segment.Window, tmpl clip.Job, alloc *allocator, log *slog.Logger) int {
	workers := c.cfg.MaxWorkers
	if workers > len(windows) {
		workers = len(windows)
	}
	if workers < 1 {
		workers = 1
	}

	next := make(chan segment.Window)
	go func() {
		defer close(next)
		for _, w := range windows {
			if ctx.Err() != nil || alloc.full() {
				return
			}
			select {
			case next <- w:
			case <-ctx.Done():
				return
			}
		}
	}()

	var attempted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for w := range next {
				// A window handed out while the final commit was in
				// flight is dropped, not attempted.
				if ctx.Err() != nil || alloc.full() {
					continue
				}
				attempted.Add(1)
				job := tmpl
				job.Window = w
				if _, err := c.processor.Process(ctx, job, alloc.commit); err != nil {
					log.Warn("clip job failed",
						"window_index", w.Index,
						"error", err,
					)
				}
			}
		}()
	}
	wg.Wait()

	return int(attempted.Load())
}

package clip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/replaycut/replaycut/internal/media"
	"github.com/replaycut/replaycut/internal/segment"
	"github.com/replaycut/replaycut/internal/subtitle"
)

// Stage names a failure boundary inside one job.
type Stage string

const (
	StageAcquire   Stage = "acquire"
	StageTransform Stage = "transform"
	StageEnrich    Stage = "enrich"
	StageCommit    Stage = "commit"
)

// StageError is a job-level failure. It never crosses the job boundary:
// the controller logs it and moves on to the next scheduled window.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Job is the unit of pipeline execution: one scheduled window plus its
// processing options. Temporary files are namespaced by the window index,
// so concurrent jobs cannot collide.
type Job struct {
	VideoID       string
	Window        segment.Window
	Mode          Mode
	BurnSubtitle  bool
	WatermarkPath string // empty disables watermarking
}

// CommitFunc moves a staged clip to its final numbered path and returns
// the committed ordinal. The run controller owns the implementation so
// ordinals stay contiguous across failed jobs.
type CommitFunc func(stagedPath string) (int, error)

// Pipeline processes clip jobs one at a time against the external tools.
type Pipeline struct {
	runner    media.Runner
	subs      subtitle.Generator // nil when transcription is unavailable
	workDir   string
	watermark WatermarkStyle
	logger    *slog.Logger
}

// New creates a clip pipeline writing intermediates under workDir.
func New(runner media.Runner, subs subtitle.Generator, workDir string, wm WatermarkStyle, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		runner:    runner,
		subs:      subs,
		workDir:   workDir,
		watermark: wm,
		logger:    logger,
	}
}

// Process executes one job: acquire, transform, optionally enrich, then
// commit. It returns the committed ordinal on success. Every intermediate
// file is removed before returning, on success and on every failure path.
func (p *Pipeline) Process(ctx context.Context, job Job, commit CommitFunc) (int, error) {
	idx := job.Window.Index
	log := p.logger.With("window_index", idx)

	downloaded := p.temp("temp_%d.mp4", idx)
	cropped := p.temp("temp_cropped_%d.mp4", idx)
	srt := p.temp("temp_%d.srt", idx)
	staged := p.temp("temp_final_%d.mp4", idx)
	defer removeAll(downloaded, cropped, srt, staged)

	log.Info("processing clip window",
		"start_s", job.Window.Start,
		"end_s", job.Window.End,
		"crop_mode", job.Mode.String(),
	)

	// Acquire: only the padded window is downloaded.
	if err := p.runner.DownloadRange(ctx, job.VideoID, job.Window.Start, job.Window.End, downloaded); err != nil {
		return 0, &StageError{Stage: StageAcquire, Err: err}
	}

	// Transform: rescale and crop to the vertical layout.
	if err := p.runner.Encode(ctx, job.Mode.transformSpec(downloaded, cropped)); err != nil {
		return 0, &StageError{Stage: StageTransform, Err: err}
	}
	os.Remove(downloaded) // the raw range is no longer needed

	// Enrich: subtitle generation failure downgrades to "no subtitle".
	subtitlePath := ""
	if job.BurnSubtitle && p.subs != nil {
		if err := p.subs.Generate(ctx, cropped, srt); err != nil {
			if !errors.Is(err, subtitle.ErrUnavailable) {
				log.Warn("subtitle generation error", "error", err)
			}
			log.Info("clip proceeds without subtitle")
		} else {
			subtitlePath = srt
		}
	}

	finalFile := cropped
	if spec := enrichPlan(cropped, subtitlePath, job.WatermarkPath, p.watermark, staged); spec != nil {
		if err := p.runner.Encode(ctx, *spec); err != nil {
			return 0, &StageError{Stage: StageEnrich, Err: err}
		}
		finalFile = staged
	}

	// Commit: with nothing to enrich this is a plain rename of the
	// transformed file, avoiding a needless lossy pass.
	ordinal, err := commit(finalFile)
	if err != nil {
		return 0, &StageError{Stage: StageCommit, Err: err}
	}

	log.Info("clip committed", "ordinal", ordinal)
	return ordinal, nil
}

func (p *Pipeline) temp(format string, idx int) string {
	return filepath.Join(p.workDir, fmt.Sprintf(format, idx))
}

func removeAll(paths ...string) {
	for _, path := range paths {
		os.Remove(path)
	}
}

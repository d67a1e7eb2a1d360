package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/replaycut/replaycut/internal/clip"
	"github.com/replaycut/replaycut/internal/config"
	"github.com/replaycut/replaycut/internal/logging"
	"github.com/replaycut/replaycut/internal/media"
	"github.com/replaycut/replaycut/internal/run"
	"github.com/replaycut/replaycut/internal/subtitle"
	"github.com/replaycut/replaycut/internal/youtube"
)

var runFlags struct {
	configPath string
	outputDir  string
	maxClips   int
	minScore   float64
	padding    float64
	cropMode   string
	subtitles  bool
	watermark  string
	workers    int
	logLevel   string
}

var runCmd = &cobra.Command{
	Use:   "run <youtube-url>",
	Short: "Extract clips from a video's engagement heatmap",
	Long: `Fetch the "most replayed" heatmap for the given video, pick the
highest-scoring moments, and render each as a vertical clip in the
output directory. Interrupting the run stops new work and leaves no
partial files behind.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(runFlags.configPath)
		if err != nil {
			return err
		}
		applyRunFlags(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := logging.NewLogger(cfg.LogLevel)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		tools, err := media.NewTools(media.Config{
			YtdlpPath:        cfg.YtdlpPath,
			FFmpegPath:       cfg.FFmpegPath,
			DownloadTimeout:  cfg.DownloadTimeout,
			TransformTimeout: cfg.TransformTimeout,
			Logger:           logger,
		})
		if err != nil {
			return err
		}

		var subs subtitle.Generator
		if cfg.Subtitles {
			whisper, err := subtitle.NewWhisperGenerator(cfg.WhisperPath, cfg.SubtitleTimeout, logger)
			if err != nil {
				logger.Warn("whisper not available, subtitles disabled", "error", err)
			} else {
				subs = whisper
			}
		}

		pipeline := clip.New(
			tools,
			subs,
			filepath.Join(cfg.OutputDir, run.WorkDirName),
			clip.WatermarkStyle{
				WidthPercent: cfg.WatermarkWidthPercent,
				PaddingX:     cfg.WatermarkPaddingX,
				PaddingY:     cfg.WatermarkPaddingY,
			},
			logger,
		)

		controller := run.New(cfg,
			youtube.NewHeatmapClient(logger),
			youtube.NewMetadataClient(logger),
			pipeline,
			logger,
		)

		summary, err := controller.Run(ctx, args[0])
		if errors.Is(err, run.ErrNoSegments) {
			fmt.Println("No high-engagement segments found. Nothing to do.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("Finished. %d of %d clip(s) saved to %s\n",
			summary.Committed, summary.Attempted, summary.OutputDir)
		return nil
	},
}

// applyRunFlags layers explicitly set flags over the loaded configuration.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputDir = runFlags.outputDir
	}
	if flags.Changed("max-clips") {
		cfg.MaxClips = runFlags.maxClips
	}
	if flags.Changed("min-score") {
		cfg.MinScore = runFlags.minScore
	}
	if flags.Changed("padding") {
		cfg.Padding = runFlags.padding
	}
	if flags.Changed("crop-mode") {
		cfg.CropMode = runFlags.cropMode
	}
	if flags.Changed("subtitles") {
		cfg.Subtitles = runFlags.subtitles
	}
	if flags.Changed("watermark") {
		cfg.WatermarkPath = runFlags.watermark
	}
	if flags.Changed("workers") {
		cfg.MaxWorkers = runFlags.workers
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = runFlags.logLevel
	}
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&runFlags.configPath, "config", "c", "", "path to YAML config file")
	f.StringVarP(&runFlags.outputDir, "output", "o", config.DefaultOutputDir, "directory for finished clips")
	f.IntVar(&runFlags.maxClips, "max-clips", config.DefaultMaxClips, "maximum clips to produce")
	f.Float64Var(&runFlags.minScore, "min-score", config.DefaultMinScore, "minimum normalised replay score in [0,1]")
	f.Float64Var(&runFlags.padding, "padding", config.DefaultPadding, "seconds of context around each segment")
	f.StringVar(&runFlags.cropMode, "crop-mode", config.CropModeDefault, "crop layout: default, split_left or split_right")
	f.BoolVar(&runFlags.subtitles, "subtitles", false, "burn generated subtitles into clips")
	f.StringVar(&runFlags.watermark, "watermark", "", "path to a watermark image overlaid on each clip")
	f.IntVar(&runFlags.workers, "workers", config.DefaultMaxWorkers, "concurrent clip jobs")
	f.StringVar(&runFlags.logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")
}

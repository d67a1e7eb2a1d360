// Package config provides configuration management for replaycut.
// Defaults are overridden first by an optional YAML config file, then by
// environment variables, then by command-line flags. The resulting Config
// is passed explicitly to the run controller; there is no process-wide state.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// Default values
	DefaultOutputDir       = "clips"
	DefaultMaxClipDuration = 60.0 // seconds
	DefaultMinScore        = 0.40
	DefaultMaxClips        = 10
	DefaultMaxWorkers      = 1
	DefaultPadding         = 10.0 // seconds
	DefaultLogLevel        = "info"

	DefaultWatermarkWidthPercent = 0.20
	DefaultWatermarkPaddingX     = 20
	DefaultWatermarkPaddingY     = 20

	// Environment variable names
	EnvOutputDir  = "REPLAYCUT_OUTPUT_DIR"
	EnvMinScore   = "REPLAYCUT_MIN_SCORE"
	EnvMaxClips   = "REPLAYCUT_MAX_CLIPS"
	EnvMaxWorkers = "REPLAYCUT_MAX_WORKERS"
	EnvPadding    = "REPLAYCUT_PADDING"
	EnvLogLevel   = "REPLAYCUT_LOG_LEVEL"
	EnvYtdlpPath  = "REPLAYCUT_YTDLP_PATH"
	EnvFFmpegPath = "REPLAYCUT_FFMPEG_PATH"

	// External tool timeout defaults
	DefaultDownloadTimeout  = 10 * time.Minute
	DefaultTransformTimeout = 10 * time.Minute
	DefaultSubtitleTimeout  = 15 * time.Minute
)

// Crop mode selector values accepted from config files and flags.
const (
	CropModeDefault    = "default"
	CropModeSplitLeft  = "split_left"
	CropModeSplitRight = "split_right"
)

// Config holds every knob the run controller and pipeline recognise.
type Config struct {
	OutputDir       string  `yaml:"output_dir"`
	MaxClipDuration float64 `yaml:"max_clip_duration"`
	MinScore        float64 `yaml:"min_score"`
	MaxClips        int     `yaml:"max_clips"`
	MaxWorkers      int     `yaml:"max_workers"`
	Padding         float64 `yaml:"padding"`
	CropMode        string  `yaml:"crop_mode"`
	Subtitles       bool    `yaml:"subtitles"`

	WatermarkPath         string  `yaml:"watermark_path"`
	WatermarkWidthPercent float64 `yaml:"watermark_width_percent"`
	WatermarkPaddingX     int     `yaml:"watermark_padding_x"`
	WatermarkPaddingY     int     `yaml:"watermark_padding_y"`

	LogLevel string `yaml:"log_level"`

	// Tool paths; empty = auto-detect on PATH.
	YtdlpPath   string `yaml:"ytdlp_path"`
	FFmpegPath  string `yaml:"ffmpeg_path"`
	WhisperPath string `yaml:"whisper_path"`

	DownloadTimeout  time.Duration `yaml:"download_timeout"`
	TransformTimeout time.Duration `yaml:"transform_timeout"`
	SubtitleTimeout  time.Duration `yaml:"subtitle_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputDir:             DefaultOutputDir,
		MaxClipDuration:       DefaultMaxClipDuration,
		MinScore:              DefaultMinScore,
		MaxClips:              DefaultMaxClips,
		MaxWorkers:            DefaultMaxWorkers,
		Padding:               DefaultPadding,
		CropMode:              CropModeDefault,
		WatermarkWidthPercent: DefaultWatermarkWidthPercent,
		WatermarkPaddingX:     DefaultWatermarkPaddingX,
		WatermarkPaddingY:     DefaultWatermarkPaddingY,
		LogLevel:              DefaultLogLevel,
		DownloadTimeout:       DefaultDownloadTimeout,
		TransformTimeout:      DefaultTransformTimeout,
		SubtitleTimeout:       DefaultSubtitleTimeout,
	}
}

// Load builds a Config from defaults, an optional YAML file, and environment
// variable overrides. An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("cannot read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("cannot parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvMinScore); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMinScore, err)
		}
		c.MinScore = f
	}
	if v := os.Getenv(EnvMaxClips); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxClips, err)
		}
		c.MaxClips = n
	}
	if v := os.Getenv(EnvMaxWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxWorkers, err)
		}
		c.MaxWorkers = n
	}
	if v := os.Getenv(EnvPadding); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPadding, err)
		}
		c.Padding = f
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvYtdlpPath); v != "" {
		c.YtdlpPath = v
	}
	if v := os.Getenv(EnvFFmpegPath); v != "" {
		c.FFmpegPath = v
	}
	return nil
}

// Validate checks ranges and the crop mode selector.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.MaxClipDuration <= 0 {
		return fmt.Errorf("max_clip_duration must be positive, got %v", c.MaxClipDuration)
	}
	if c.MinScore < 0 || c.MinScore > 1 {
		return fmt.Errorf("min_score must be within [0,1], got %v", c.MinScore)
	}
	if c.MaxClips < 1 {
		return fmt.Errorf("max_clips must be at least 1, got %d", c.MaxClips)
	}
	if c.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be at least 1, got %d", c.MaxWorkers)
	}
	if c.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %v", c.Padding)
	}
	switch c.CropMode {
	case CropModeDefault, CropModeSplitLeft, CropModeSplitRight:
	default:
		return fmt.Errorf("unknown crop_mode %q (want %s, %s or %s)",
			c.CropMode, CropModeDefault, CropModeSplitLeft, CropModeSplitRight)
	}
	if c.WatermarkWidthPercent <= 0 || c.WatermarkWidthPercent > 1 {
		return fmt.Errorf("watermark_width_percent must be within (0,1], got %v", c.WatermarkWidthPercent)
	}
	return nil
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

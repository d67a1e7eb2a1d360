package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/replaycut/replaycut/internal/config"
	"github.com/replaycut/replaycut/internal/media"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check external tool availability",
	Long:  `Check that yt-dlp and ffmpeg are installed. whisper is optional and only needed for subtitle generation.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Checking dependencies...")
		fmt.Println()

		allGood := true
		for _, p := range media.Doctor(
			os.Getenv(config.EnvYtdlpPath),
			os.Getenv(config.EnvFFmpegPath),
			"",
		) {
			switch {
			case p.Available():
				fmt.Printf("✓ %s: %s\n", p.Name, p.Path)
			case p.Optional:
				fmt.Printf("- %s: not found (optional, subtitles disabled)\n", p.Name)
			default:
				fmt.Printf("✗ %s: NOT FOUND\n", p.Name)
				fmt.Printf("  %v\n", p.Err)
				allGood = false
			}
		}

		fmt.Println()
		if allGood {
			fmt.Println("All required dependencies are installed!")
		} else {
			fmt.Println("Some required dependencies are missing.")
			os.Exit(1)
		}
	},
}

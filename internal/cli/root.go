// Package cli defines the replaycut command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "replaycut",
	Short: "Extract high-engagement clips from YouTube videos",
	Long: `replaycut reads a YouTube video's "most replayed" engagement heatmap,
selects the most replayed moments, and renders each one as a vertical
short-form clip.

Only the selected time ranges are downloaded, so a run on a long video
stays fast. Clips can optionally carry burned-in subtitles and a
watermark image.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the command tree and exits nonzero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/replaycut/replaycut/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("replaycut %s (built %s, commit %s)\n",
			config.Version, config.BuildTime, config.GitCommit)
	},
}

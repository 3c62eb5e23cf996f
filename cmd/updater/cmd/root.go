package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tellapart/aurora/internal/common/logging"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "updater",
	Short: "Drive the per-instance update decision engine over a scripted scenario",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetLevel(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.AddCommand(Simulate())
}

// Execute runs the CLI, using a package-level rootCmd wired up in init().
func Execute() error {
	return rootCmd.Execute()
}

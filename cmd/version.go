package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

const (
	VERSION string = "0.1.0"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show repscan version",
	Long:  ``,
	// version must work without a valid configuration
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		appUI.KeyValue([][2]string{
			{"Version", VERSION},
			{"Go", runtime.Version()},
			{"Platform", runtime.GOOS + "/" + runtime.GOARCH},
		})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

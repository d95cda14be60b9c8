package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the switchboard version",
	Long:  "Show the switchboard release version and the Go runtime it was built with.",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("switchboard version %s (%s, %s/%s)\n",
			version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the konverge version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("konverge %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

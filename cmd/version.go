package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ygelfand/vidstrip/internal/config"
	"github.com/ygelfand/vidstrip/internal/ui"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Println(config.FullVersion())
			return
		}
		ui.RenderSummary("vidstrip", []ui.SummaryItem{
			{Label: "Version", Value: config.Version},
			{Label: "Commit", Value: config.GitCommit},
			{Label: "Built", Value: config.BuildDate},
		})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print a single version string")
}

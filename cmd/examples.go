package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ygelfand/vidstrip/internal/player"
	"github.com/ygelfand/vidstrip/internal/ui"
)

var examplesCmd = &cobra.Command{
	Use:     "examples",
	Short:   "List the built-in example videos",
	Args:    cobra.NoArgs,
	GroupID: "media",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := make([][]string, 0, len(player.Examples))
		for _, ex := range player.Examples {
			rows = append(rows, []string{ex.Name, ex.URL})
		}
		return ui.OutputData{
			Title:   "Example videos",
			Headers: []string{"NAME", "URL"},
			Rows:    rows,
			Raw:     player.Examples,
		}.Print()
	},
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}

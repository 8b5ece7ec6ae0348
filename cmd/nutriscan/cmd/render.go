package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"go-nutriscan/internal/render"
	"go-nutriscan/pkg/models"
)

var renderCmd = &cobra.Command{
	Use:   "render <result.json>",
	Short: "Re-render a previously saved analysis envelope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		// An empty envelope is tolerated and renders as "no result".
		result, err := models.DecodeResult(string(data))
		if err != nil {
			return err
		}

		render.NewReporter(os.Stdout, noColor).Report(result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

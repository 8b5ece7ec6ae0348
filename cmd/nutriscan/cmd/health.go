package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"go-nutriscan/internal/scoring"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the scoring service for liveness",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := scoring.NewClient(globalConfig.Scoring.BaseURL, globalConfig.Scoring.RequestTimeout)
		if err := client.Health(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Scoring service at %s is available.\n", globalConfig.Scoring.BaseURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

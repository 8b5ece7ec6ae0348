package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-nutriscan/internal/config"
)

var (
	cfgFile      string
	serverURL    string
	noColor      bool
	globalConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "nutriscan",
	Short: "Scan nutrition labels and score their ingredients",
	Long: `nutriscan reads a product-label photo, extracts the ingredient list
with on-device text recognition, and submits it to a remote scoring
service. The returned analysis is rendered as a color-classified report.

Examples:
  nutriscan register alice@example.com secret
  nutriscan scan label.jpg
  nutriscan scan https://example.com/label.png --product-name "Choco Bar"
  nutriscan render saved-result.json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if serverURL != "" {
			cfg.Scoring.BaseURL = serverURL
		}
		globalConfig = cfg
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.nutriscan/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "scoring service base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

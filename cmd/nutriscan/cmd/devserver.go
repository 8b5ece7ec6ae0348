package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"go-nutriscan/internal/devserver"
)

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Serve the scoring wire contract with canned data",
	Long: `devserver runs a local stand-in for the remote scoring service.
It answers GET / and POST /analyze with canned data so the scan pipeline
can be exercised without the real service. It does not implement the
scoring algorithm.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return devserver.New(globalConfig.DevServer).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(devserverCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the bare binary serves the API.
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "merchant-pulse",
		Short: "Simulated transaction analytics for a payment dashboard",
		Long: `Merchant Pulse keeps a bounded in-memory ledger of synthetic payment
transactions, serves analytics and exports over HTTP, and streams a simulated
live feed of new transactions.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a config file (default ./config.yaml)")

	root.AddCommand(
		newServeCmd(&configPath),
		newExportCmd(&configPath),
		newSimulateCmd(&configPath),
	)
	return root
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "terrain-profile",
		Short:         "Elevation profiles and statistics for GPS tracks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		computeCmd(),
		distanceCmd(),
		serveCmd(),
	)

	return root
}

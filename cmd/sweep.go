package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Evict travel cache entries past the eviction age",
	RunE:  runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	removed := svc.Engine.SweepCache(ctx)
	return printJSON(cmd, map[string]int{"removed": removed})
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	estimateFrom string
	estimateTo   string
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Resolve a travel estimate between two location codes",
	RunE:  runEstimate,
}

func init() {
	estimateCmd.Flags().StringVar(&estimateFrom, "from", "", "origin location code")
	estimateCmd.Flags().StringVar(&estimateTo, "to", "", "destination location code")
	for _, f := range []string{"from", "to"} {
		if err := estimateCmd.MarkFlagRequired(f); err != nil {
			panic(err)
		}
	}
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	est := svc.Engine.GetTravelEstimate(ctx, estimateFrom, estimateTo)
	return printJSON(cmd, est)
}

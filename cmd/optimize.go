package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	optimizeVendor string
	optimizeDate   string
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Analyse a vendor's booked day for inefficiencies",
	RunE:  runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&optimizeVendor, "vendor", "", "vendor id")
	optimizeCmd.Flags().StringVar(&optimizeDate, "date", "", "day to analyse (YYYY-MM-DD)")
	for _, f := range []string{"vendor", "date"} {
		if err := optimizeCmd.MarkFlagRequired(f); err != nil {
			panic(err)
		}
	}
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	date, err := parseDate(optimizeDate)
	if err != nil {
		return err
	}
	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	report, err := svc.Engine.OptimizeDay(ctx, optimizeVendor, date)
	if err != nil {
		return err
	}
	return printJSON(cmd, report)
}

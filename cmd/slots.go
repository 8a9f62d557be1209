package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	slotsVendor   string
	slotsService  string
	slotsLocation string
	slotsDate     string
	slotsDays     int
	slotsBest     bool
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Generate scored candidate slots for a booking request",
	RunE:  runSlots,
}

func init() {
	slotsCmd.Flags().StringVar(&slotsVendor, "vendor", "", "vendor id")
	slotsCmd.Flags().StringVar(&slotsService, "service", "", "service id")
	slotsCmd.Flags().StringVar(&slotsLocation, "location", "", "customer location code")
	slotsCmd.Flags().StringVar(&slotsDate, "date", "", "first day to probe (YYYY-MM-DD)")
	slotsCmd.Flags().IntVar(&slotsDays, "days", 1, "number of days to probe")
	slotsCmd.Flags().BoolVar(&slotsBest, "best", false, "print only the highest scoring slot")
	for _, f := range []string{"vendor", "service", "location", "date"} {
		if err := slotsCmd.MarkFlagRequired(f); err != nil {
			panic(err)
		}
	}
	rootCmd.AddCommand(slotsCmd)
}

func runSlots(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	date, err := parseDate(slotsDate)
	if err != nil {
		return err
	}
	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	if slotsBest {
		best, ok, err := svc.Engine.SuggestBestSlot(ctx, slotsVendor, slotsService, slotsLocation, date)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no feasible slot on %s", slotsDate)
		}
		return printJSON(cmd, best)
	}

	slots, err := svc.Engine.GetSlots(ctx, slotsVendor, slotsService, slotsLocation, date, slotsDays)
	if err != nil {
		return err
	}
	return printJSON(cmd, slots)
}

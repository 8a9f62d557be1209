package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ygoas29/fieldway/core/model"
)

var (
	rescheduleBookingFile string
	rescheduleETA         int
)

var rescheduleCmd = &cobra.Command{
	Use:   "reschedule",
	Short: "Review a booking against a new travel ETA",
	RunE:  runReschedule,
}

func init() {
	rescheduleCmd.Flags().StringVar(&rescheduleBookingFile, "booking", "", "path of a JSON booking file")
	rescheduleCmd.Flags().IntVar(&rescheduleETA, "eta", 0, "new travel ETA in minutes")
	for _, f := range []string{"booking", "eta"} {
		if err := rescheduleCmd.MarkFlagRequired(f); err != nil {
			panic(err)
		}
	}
	rootCmd.AddCommand(rescheduleCmd)
}

func runReschedule(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	data, err := os.ReadFile(rescheduleBookingFile)
	if err != nil {
		return fmt.Errorf("read booking: %w", err)
	}
	var booking model.Booking
	if err := json.Unmarshal(data, &booking); err != nil {
		return fmt.Errorf("decode booking: %w", err)
	}

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	decision, err := svc.Engine.ReconsiderBooking(ctx, booking, rescheduleETA)
	if err != nil {
		return err
	}
	return printJSON(cmd, decision)
}

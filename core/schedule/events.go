package schedule

import "github.com/ygoas29/fieldway/core/model"

// SlotsGeneratedEvent is published after a slot generation request.
type SlotsGeneratedEvent struct {
	VendorID   string
	ServiceID  string
	Candidates int
}

// SlotSuggestedEvent is published when a best slot is recommended.
type SlotSuggestedEvent struct {
	Slot model.CandidateSlot
}

// RescheduleDecidedEvent is published after a reschedule review so
// collaborating services can react to moved bookings.
type RescheduleDecidedEvent struct {
	Decision Decision
}

package model

import "time"

// CandidateSlot is an ephemeral booking proposal produced by the slot
// generator. It is never persisted; callers either promote it into a booking
// through the external booking flow or drop it.
type CandidateSlot struct {
	VendorID  string `json:"vendor_id"`
	ServiceID string `json:"service_id"`
	Location  string `json:"location"`

	// Start and End bound the service itself.
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// DepartBy is when the vendor must leave the previous location.
	DepartBy time.Time `json:"depart_by"`
	// FreeAgain is when the vendor is available again, return trip included.
	FreeAgain time.Time `json:"free_again"`

	BufferMinutes   int            `json:"buffer_minutes"`
	TrafficAdjusted bool           `json:"traffic_adjusted"`
	Travel          TravelEstimate `json:"travel"`

	// NextTravelTimeMinutes is the travel from the customer to the vendor's
	// next scheduled entry after FreeAgain. Valid only when HasNextEntry.
	NextTravelTimeMinutes int  `json:"next_travel_time_minutes,omitempty"`
	HasNextEntry          bool `json:"has_next_entry"`

	Score float64 `json:"score"`
}

// Occupied returns the full span the candidate would block on the vendor's
// calendar.
func (c CandidateSlot) Occupied() Interval {
	return Interval{Start: c.DepartBy, End: c.FreeAgain}
}

package model

import (
	"fmt"
	"time"
)

// Interval is a half-open time span [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not conflict.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

// Duration returns the length of the interval.
func (i Interval) Duration() time.Duration { return i.End.Sub(i.Start) }

// AvailabilityWindow is a recurring weekly working window for a vendor.
// Start and end are expressed as minutes since midnight in the vendor's
// local day.
type AvailabilityWindow struct {
	VendorID               string       `json:"vendor_id"`
	Weekday                time.Weekday `json:"weekday"`
	StartMinute            int          `json:"start_minute"`
	EndMinute              int          `json:"end_minute"`
	Location               string       `json:"location"`
	ServiceRadiusKm        float64      `json:"service_radius_km"`
	MaxTravelMinutes       int          `json:"max_travel_minutes"`
	PreferredBufferMinutes int          `json:"preferred_buffer_minutes"`
}

// StartAt anchors the window start on the given date.
func (w AvailabilityWindow) StartAt(date time.Time) time.Time {
	return atMinute(date, w.StartMinute)
}

// EndAt anchors the window end on the given date.
func (w AvailabilityWindow) EndAt(date time.Time) time.Time {
	return atMinute(date, w.EndMinute)
}

// Validate checks that the window is well formed.
func (w AvailabilityWindow) Validate() error {
	if w.StartMinute < 0 || w.EndMinute > 24*60 || w.StartMinute >= w.EndMinute {
		return fmt.Errorf("invalid window %d-%d", w.StartMinute, w.EndMinute)
	}
	return nil
}

func atMinute(date time.Time, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).
		Add(time.Duration(minute) * time.Minute)
}

// EntryStatus is the lifecycle state of a calendar entry.
type EntryStatus string

const (
	StatusConfirmed  EntryStatus = "confirmed"
	StatusInProgress EntryStatus = "in_progress"
	StatusCompleted  EntryStatus = "completed"
	StatusCancelled  EntryStatus = "cancelled"
)

// OccupiesTime reports whether an entry in this status still blocks the
// vendor's calendar.
func (s EntryStatus) OccupiesTime() bool {
	return s == StatusConfirmed || s == StatusInProgress
}

// CalendarEntry is a read-only projection of a booked job. The engine never
// owns or mutates these; they are consumed to detect conflicts and analyse a
// vendor's day.
type CalendarEntry struct {
	ID                     string      `json:"id"`
	VendorID               string      `json:"vendor_id"`
	Location               string      `json:"location"`
	ScheduledStart         time.Time   `json:"scheduled_start"`
	ActualStart            *time.Time  `json:"actual_start,omitempty"`
	ActualEnd              *time.Time  `json:"actual_end,omitempty"`
	ServiceDurationMinutes int         `json:"service_duration_minutes"`
	TravelTimeToMinutes    int         `json:"travel_time_to_minutes"`
	TravelTimeFromMinutes  int         `json:"travel_time_from_minutes"`
	BufferBeforeMinutes    int         `json:"buffer_before_minutes"`
	BufferAfterMinutes     int         `json:"buffer_after_minutes"`
	Status                 EntryStatus `json:"status"`
}

// Occupied returns the full span the entry blocks, from departure for the
// inbound trip until the vendor is free again after the return trip.
func (e CalendarEntry) Occupied() Interval {
	start := e.ScheduledStart.Add(-time.Duration(e.TravelTimeToMinutes) * time.Minute)
	end := e.ScheduledStart.
		Add(time.Duration(e.ServiceDurationMinutes) * time.Minute).
		Add(time.Duration(e.BufferAfterMinutes) * time.Minute).
		Add(time.Duration(e.TravelTimeFromMinutes) * time.Minute)
	return Interval{Start: start, End: end}
}

// OccupyingEntries filters entries down to the statuses that consume vendor
// time, sorted order is preserved.
func OccupyingEntries(entries []CalendarEntry) []CalendarEntry {
	out := make([]CalendarEntry, 0, len(entries))
	for _, e := range entries {
		if e.Status.OccupiesTime() {
			out = append(out, e)
		}
	}
	return out
}

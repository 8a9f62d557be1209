package model

import (
	"fmt"
	"time"
)

// Vendor is the subset of the vendor account the engine needs: an identity
// and a registered home location.
type Vendor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Service describes a bookable service with a fixed duration.
type Service struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Validate checks the service definition.
func (s Service) Validate() error {
	if s.DurationMinutes <= 0 {
		return fmt.Errorf("service %s: duration must be positive", s.ID)
	}
	return nil
}

// Booking is a confirmed appointment as seen by the reschedule advisor. It
// mirrors the calendar projection plus the live travel figure under review.
type Booking struct {
	ID                     string     `json:"id"`
	VendorID               string     `json:"vendor_id"`
	Location               string     `json:"location"`
	ScheduledStart         time.Time  `json:"scheduled_start"`
	ActualStart            *time.Time `json:"actual_start,omitempty"`
	ServiceDurationMinutes int        `json:"service_duration_minutes"`
	TravelTimeToMinutes    int        `json:"travel_time_to_minutes"`
	TravelTimeFromMinutes  int        `json:"travel_time_from_minutes"`
	BufferAfterMinutes     int        `json:"buffer_after_minutes"`
}

// Occupied returns the span the booking blocks on the vendor's calendar.
func (b Booking) Occupied() Interval {
	start := b.ScheduledStart.Add(-time.Duration(b.TravelTimeToMinutes) * time.Minute)
	end := b.ScheduledStart.
		Add(time.Duration(b.ServiceDurationMinutes) * time.Minute).
		Add(time.Duration(b.BufferAfterMinutes) * time.Minute).
		Add(time.Duration(b.TravelTimeFromMinutes) * time.Minute)
	return Interval{Start: start, End: end}
}

package schedule

import (
	"fmt"
	"time"

	"github.com/ygoas29/fieldway/core/logger"
	"github.com/ygoas29/fieldway/core/model"
)

// RescheduleAction is the outcome of reconsidering a booking.
type RescheduleAction string

const (
	// ActionNoChange means the ETA shift is below the reschedule threshold.
	ActionNoChange RescheduleAction = "no_change"
	// ActionRescheduled means the booking was moved by the ETA delta.
	ActionRescheduled RescheduleAction = "rescheduled"
	// ActionUnavailable means the vendor has no availability window on the
	// booking's weekday, so no new time could be computed.
	ActionUnavailable RescheduleAction = "unavailable"
)

// Decision is the structured result of a reschedule review. Callers always
// receive a decision, never an exception-style failure: a missing window is
// an expected business outcome.
type Decision struct {
	Action       RescheduleAction `json:"action"`
	Reason       string           `json:"reason,omitempty"`
	DeltaMinutes int              `json:"delta_minutes"`
	NewStart     time.Time        `json:"new_start,omitempty"`
	Occupied     model.Interval   `json:"occupied,omitempty"`
	// Booking carries the updated travel time and schedule when the action
	// is rescheduled; otherwise it is the unchanged input.
	Booking model.Booking `json:"booking"`
}

// Advisor reacts to live travel estimate changes for already-booked jobs.
type Advisor struct {
	cfg Config
	log logger.Logger
	now func() time.Time
}

// NewAdvisor creates an Advisor.
func NewAdvisor(cfg Config, log logger.Logger) *Advisor {
	cfg.SetDefaults()
	return &Advisor{cfg: cfg, log: log, now: time.Now}
}

// Reconsider decides whether a new travel ETA is material enough to move the
// booking. Shifts below the threshold keep the schedule stable. When moving
// earlier the new start is floored at now, and at the actual start when the
// job is already underway.
func (a *Advisor) Reconsider(booking model.Booking, newETAMinutes int, windows []model.AvailabilityWindow) Decision {
	delta := newETAMinutes - booking.TravelTimeToMinutes
	decision := Decision{DeltaMinutes: delta, Booking: booking}

	if abs(delta) < a.cfg.RescheduleThresholdMinutes {
		decision.Action = ActionNoChange
		decision.Reason = fmt.Sprintf("eta shift of %d min is below the %d min threshold",
			delta, a.cfg.RescheduleThresholdMinutes)
		return decision
	}

	weekday := booking.ScheduledStart.Weekday()
	if !hasWindowOn(windows, weekday) {
		decision.Action = ActionUnavailable
		decision.Reason = fmt.Sprintf("no availability window on %s", weekday)
		return decision
	}

	newStart := booking.ScheduledStart.Add(time.Duration(delta) * time.Minute)
	if delta < 0 {
		floor := a.now()
		if booking.ActualStart != nil && booking.ActualStart.After(floor) {
			floor = *booking.ActualStart
		}
		if newStart.Before(floor) {
			newStart = floor
		}
	}

	updated := booking
	updated.ScheduledStart = newStart
	updated.TravelTimeToMinutes = newETAMinutes

	decision.Action = ActionRescheduled
	decision.NewStart = newStart
	decision.Booking = updated
	decision.Occupied = updated.Occupied()

	a.log.Infof("booking %s rescheduled by %+d min to %s", booking.ID, delta, newStart.Format(time.RFC3339))
	return decision
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func hasWindowOn(windows []model.AvailabilityWindow, day time.Weekday) bool {
	for _, w := range windows {
		if w.Weekday == day {
			return true
		}
	}
	return false
}

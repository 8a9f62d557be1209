package schedule

import "fmt"

// Config defines the engine's scheduling parameters loaded from
// configuration.
type Config struct {
	// ProbeIntervalMinutes is the granularity at which candidate start
	// times are probed inside an availability window.
	ProbeIntervalMinutes int `json:"probe_interval_minutes"`
	// MinimumBreakMinutes is the floor applied to every adjusted buffer,
	// even with zero travel.
	MinimumBreakMinutes int `json:"minimum_break_minutes"`
	// RescheduleThresholdMinutes is the minimum ETA shift that justifies
	// moving a booking.
	RescheduleThresholdMinutes int `json:"reschedule_threshold_minutes"`
	// ExcessiveGapMinutes is the idle gap above which the optimizer flags
	// a day; gaps above MediumGapMinutes are raised to medium severity.
	ExcessiveGapMinutes int `json:"excessive_gap_minutes"`
	MediumGapMinutes    int `json:"medium_gap_minutes"`
	// TravelOverrunRatio flags routing as inefficient when recorded travel
	// exceeds the expected travel by this factor.
	TravelOverrunRatio float64 `json:"travel_overrun_ratio"`
	// MaxDaysAhead caps the range of a slot generation request.
	MaxDaysAhead int `json:"max_days_ahead"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ProbeIntervalMinutes == 0 {
		c.ProbeIntervalMinutes = 60
	}
	if c.MinimumBreakMinutes == 0 {
		c.MinimumBreakMinutes = 15
	}
	if c.RescheduleThresholdMinutes == 0 {
		c.RescheduleThresholdMinutes = 30
	}
	if c.ExcessiveGapMinutes == 0 {
		c.ExcessiveGapMinutes = 60
	}
	if c.MediumGapMinutes == 0 {
		c.MediumGapMinutes = 120
	}
	if c.TravelOverrunRatio == 0 {
		c.TravelOverrunRatio = 1.5
	}
	if c.MaxDaysAhead == 0 {
		c.MaxDaysAhead = 30
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.ProbeIntervalMinutes < 0 {
		return fmt.Errorf("probe_interval_minutes must be positive")
	}
	if c.TravelOverrunRatio < 1 && c.TravelOverrunRatio != 0 {
		return fmt.Errorf("travel_overrun_ratio must be at least 1")
	}
	if c.MediumGapMinutes != 0 && c.MediumGapMinutes < c.ExcessiveGapMinutes {
		return fmt.Errorf("medium_gap_minutes must not be below excessive_gap_minutes")
	}
	return nil
}

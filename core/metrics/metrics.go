package metrics

import "time"

// Resolution records one travel resolution for observability purposes.
type Resolution struct {
	From            string
	To              string
	Source          string
	DurationMinutes int
	Confidence      float64
	Time            time.Time
}

// SlotGeneration summarizes one slot generation request.
type SlotGeneration struct {
	VendorID         string
	ServiceID        string
	CustomerLocation string
	Days             int
	Candidates       int
	BestScore        float64
	Elapsed          time.Duration
	Time             time.Time
}

// Reschedule records the outcome of a reschedule review.
type Reschedule struct {
	BookingID    string
	VendorID     string
	Action       string
	DeltaMinutes int
	Time         time.Time
}

// Sink records engine events for observability purposes.
type Sink interface {
	RecordSlotGeneration(ev SlotGeneration) error
}

// ResolutionRecorder is implemented by sinks able to record travel
// resolutions.
type ResolutionRecorder interface {
	RecordResolution(ev Resolution) error
}

// RescheduleRecorder is implemented by sinks able to record reschedule
// decisions.
type RescheduleRecorder interface {
	RecordReschedule(ev Reschedule) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordSlotGeneration(SlotGeneration) error { return nil }
func (NopSink) RecordResolution(Resolution) error         { return nil }
func (NopSink) RecordReschedule(Reschedule) error         { return nil }

package metrics

import coremetrics "github.com/ygoas29/fieldway/core/metrics"

// MultiSink fans engine events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSlotGeneration forwards the record to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordSlotGeneration(ev coremetrics.SlotGeneration) error {
	for _, s := range m.Sinks {
		if err := s.RecordSlotGeneration(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordResolution forwards travel resolutions to sinks that record them.
func (m *MultiSink) RecordResolution(ev coremetrics.Resolution) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.ResolutionRecorder); ok {
			if err := rec.RecordResolution(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordReschedule forwards reschedule decisions to sinks that record them.
func (m *MultiSink) RecordReschedule(ev coremetrics.Reschedule) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.RescheduleRecorder); ok {
			if err := rec.RecordReschedule(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

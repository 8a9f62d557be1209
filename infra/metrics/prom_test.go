package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/ygoas29/fieldway/core/metrics"
)

func TestPromSink_RecordsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	ps := sink.(*PromSink)

	if err := ps.RecordSlotGeneration(coremetrics.SlotGeneration{
		VendorID:   "v1",
		ServiceID:  "s1",
		Candidates: 4,
		BestScore:  85,
		Elapsed:    20 * time.Millisecond,
		Time:       time.Now(),
	}); err != nil {
		t.Fatalf("record generation: %v", err)
	}
	if got := testutil.ToFloat64(ps.generations.WithLabelValues("v1", "s1")); got != 1 {
		t.Fatalf("expected 1 generation, got %v", got)
	}

	if err := ps.RecordResolution(coremetrics.Resolution{Source: "cache"}); err != nil {
		t.Fatalf("record resolution: %v", err)
	}
	if got := testutil.ToFloat64(ps.resolutions.WithLabelValues("cache")); got != 1 {
		t.Fatalf("expected 1 resolution, got %v", got)
	}

	if err := ps.RecordReschedule(coremetrics.Reschedule{VendorID: "v1", Action: "rescheduled"}); err != nil {
		t.Fatalf("record reschedule: %v", err)
	}
	if got := testutil.ToFloat64(ps.reschedules.WithLabelValues("v1", "rescheduled")); got != 1 {
		t.Fatalf("expected 1 reschedule, got %v", got)
	}
}

func TestPromSink_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	// Registering twice on the same registry reuses the existing collectors.
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second registration: %v", err)
	}
}

package schedule

import (
	"testing"

	"github.com/ygoas29/fieldway/core/model"
)

func providerEstimate(duration, traffic int, confidence float64) model.TravelEstimate {
	return model.TravelEstimate{
		DistanceKm:               float64(duration),
		DurationMinutes:          duration,
		DurationInTrafficMinutes: traffic,
		ConfidenceScore:          confidence,
		Source:                   model.SourceProvider,
	}
}

func TestAdjustBuffer_FallbackConfidence(t *testing.T) {
	est := model.TravelEstimate{
		DistanceKm:               15,
		DurationMinutes:          30,
		DurationInTrafficMinutes: 39,
		ConfidenceScore:          0.5,
		Source:                   model.SourceEstimated,
	}
	got, trafficAdjusted := AdjustBuffer(30, est, 15)
	// The confidence multiplier (1.5) dominates the synthetic traffic
	// ratio (1.3), so the buffer is 30 x 1.5 and not traffic driven.
	if got != 45 {
		t.Fatalf("expected 45, got %d", got)
	}
	if trafficAdjusted {
		t.Fatalf("fallback buffer must not be marked traffic adjusted")
	}
}

func TestAdjustBuffer_MinimumBreakFloor(t *testing.T) {
	got, _ := AdjustBuffer(0, providerEstimate(10, 10, 1), 15)
	if got != 15 {
		t.Fatalf("expected the 15 minute floor, got %d", got)
	}
	got, _ = AdjustBuffer(5, providerEstimate(0, 0, 1), 15)
	if got != 15 {
		t.Fatalf("expected the floor with zero travel, got %d", got)
	}
}

func TestAdjustBuffer_TrafficInflates(t *testing.T) {
	base := 30
	calm, adjCalm := AdjustBuffer(base, providerEstimate(30, 30, 1), 15)
	heavy, adjHeavy := AdjustBuffer(base, providerEstimate(30, 60, 1), 15)
	if calm != 30 || adjCalm {
		t.Fatalf("ratio 1 must leave the buffer untouched, got %d adj=%v", calm, adjCalm)
	}
	if heavy != 60 || !adjHeavy {
		t.Fatalf("ratio 2 must double the buffer, got %d adj=%v", heavy, adjHeavy)
	}
}

func TestAdjustBuffer_MonotoneInTraffic(t *testing.T) {
	prev := 0
	for traffic := 30; traffic <= 90; traffic += 10 {
		got, _ := AdjustBuffer(30, providerEstimate(30, traffic, 1), 15)
		if got < prev {
			t.Fatalf("buffer decreased from %d to %d at traffic %d", prev, got, traffic)
		}
		prev = got
	}
}

func TestAdjustBuffer_MonotoneInConfidence(t *testing.T) {
	prev := 0
	for conf := 10; conf >= 0; conf-- {
		got, _ := AdjustBuffer(30, providerEstimate(30, 30, float64(conf)/10), 15)
		if got < prev {
			t.Fatalf("buffer decreased from %d to %d at confidence %d%%", prev, got, conf*10)
		}
		prev = got
	}
}

func TestAdjustBuffer_MonotoneInConfidenceUnderTraffic(t *testing.T) {
	// With a traffic ratio above 1 the buffer must still never shrink as
	// confidence drops below full.
	prev := 0
	for conf := 10; conf >= 0; conf-- {
		got, _ := AdjustBuffer(30, providerEstimate(30, 60, float64(conf)/10), 15)
		if got < prev {
			t.Fatalf("buffer decreased from %d to %d at confidence %d%%", prev, got, conf*10)
		}
		prev = got
	}

	full, _ := AdjustBuffer(30, providerEstimate(30, 60, 1.0), 15)
	almost, _ := AdjustBuffer(30, providerEstimate(30, 60, 0.9), 15)
	if almost < full {
		t.Fatalf("buffer dropped from %d to %d as confidence fell 1.0 -> 0.9", full, almost)
	}
}

func TestAdjustBuffer_TrafficNeverReduces(t *testing.T) {
	// duration_in_traffic below duration is tolerated and floored at 1.
	got, adjusted := AdjustBuffer(30, providerEstimate(30, 20, 1), 15)
	if got != 30 || adjusted {
		t.Fatalf("light traffic must not shrink the buffer, got %d adj=%v", got, adjusted)
	}
}

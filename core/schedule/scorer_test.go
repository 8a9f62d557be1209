package schedule

import (
	"testing"

	"github.com/ygoas29/fieldway/core/model"
)

func candidateAt(hour int, travelMin int, confidence float64) model.CandidateSlot {
	return model.CandidateSlot{
		Start: at(monday, hour, 0),
		Travel: model.TravelEstimate{
			DurationMinutes: travelMin,
			ConfidenceScore: confidence,
		},
	}
}

func TestScore_Bounds(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for _, travelMin := range []int{5, 20, 40, 90} {
			for _, conf := range []float64{0, 0.5, 1} {
				s := Score(candidateAt(hour, travelMin, conf))
				if s < 0 || s > 100 {
					t.Fatalf("score %v out of bounds for hour=%d travel=%d conf=%v", s, hour, travelMin, conf)
				}
			}
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	c := candidateAt(9, 10, 1)
	c.HasNextEntry = true
	c.NextTravelTimeMinutes = 10
	if Score(c) != Score(c) {
		t.Fatalf("score must be deterministic for identical inputs")
	}
}

func TestScore_Components(t *testing.T) {
	// Morning prime, short travel, full confidence, no next booking, no
	// traffic adjustment: 50 + 20 + 15 + 15 + 5 = 100 once clamped.
	best := candidateAt(9, 10, 1)
	if got := Score(best); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}

	// Evening, long travel, zero confidence: 50 - 10 + 0 - 5 + 5 = 40.
	worst := candidateAt(19, 90, 0)
	if got := Score(worst); got != 40 {
		t.Fatalf("expected 40, got %v", got)
	}
}

func TestScore_NextBookingProximity(t *testing.T) {
	near := candidateAt(12, 20, 0.5)
	near.HasNextEntry = true
	near.NextTravelTimeMinutes = 10

	far := near
	far.NextTravelTimeMinutes = 60

	if Score(near) <= Score(far) {
		t.Fatalf("a tight follow-up trip must score higher: near=%v far=%v", Score(near), Score(far))
	}
	if Score(near)-Score(far) != 20 {
		t.Fatalf("expected +10/-10 spread, got %v", Score(near)-Score(far))
	}
}

func TestScore_TrafficAdjustedPenalty(t *testing.T) {
	calm := candidateAt(12, 20, 0.5)
	heavy := calm
	heavy.TrafficAdjusted = true
	if Score(calm)-Score(heavy) != 5 {
		t.Fatalf("predictability bonus must be 5, got %v", Score(calm)-Score(heavy))
	}
}

func TestScore_TimeOfDay(t *testing.T) {
	morning := Score(candidateAt(10, 20, 0.5))
	afternoon := Score(candidateAt(15, 20, 0.5))
	evening := Score(candidateAt(18, 20, 0.5))
	midday := Score(candidateAt(12, 20, 0.5))

	if morning-midday != 15 {
		t.Fatalf("morning prime bonus: got %v", morning-midday)
	}
	if afternoon-midday != 10 {
		t.Fatalf("afternoon prime bonus: got %v", afternoon-midday)
	}
	if midday-evening != 5 {
		t.Fatalf("evening penalty: got %v", midday-evening)
	}
}

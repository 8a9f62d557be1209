package schedule

import (
	"math"

	"github.com/ygoas29/fieldway/core/model"
)

// AdjustBuffer scales a vendor's preferred buffer with the estimate's
// traffic ratio and confidence. Traffic never reduces the buffer and low
// confidence inflates it, up to a factor of two at confidence zero. The
// returned predicate reports whether traffic actually inflated the raw
// buffer; it is computed once here and carried on the candidate so scoring
// does not re-derive it.
func AdjustBuffer(baseMinutes int, est model.TravelEstimate, minimumBreakMinutes int) (int, bool) {
	// The two multipliers price the same uncertainty from different angles,
	// so the larger one wins rather than compounding. Taking the max keeps
	// the buffer monotone in both the traffic ratio and falling confidence:
	// whichever concern dominates sets the size, and neither can pull it
	// below what the other demands.
	trafficRatio := est.TrafficRatio()
	confidenceMultiplier := 1 + (1 - est.ConfidenceScore)
	multiplier := math.Max(trafficRatio, confidenceMultiplier)

	adjusted := int(math.Round(float64(baseMinutes) * multiplier))
	if adjusted < minimumBreakMinutes {
		adjusted = minimumBreakMinutes
	}
	return adjusted, trafficRatio > 1 && trafficRatio >= confidenceMultiplier
}

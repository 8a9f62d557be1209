package schedule

import "github.com/ygoas29/fieldway/core/model"

// Score rates a candidate slot on a 0-100 scale using a weighted heuristic:
// short travel, trustworthy data, proximity to the next booking, prime hours
// and a buffer that needed no traffic inflation all pull the score up. The
// function is deterministic for identical inputs.
func Score(c model.CandidateSlot) float64 {
	score := 50.0

	switch travelMin := c.Travel.DurationMinutes; {
	case travelMin <= 15:
		score += 20
	case travelMin <= 30:
		score += 10
	case travelMin <= 45:
		score += 5
	default:
		score -= 10
	}

	score += c.Travel.ConfidenceScore * 15

	if c.HasNextEntry {
		switch {
		case c.NextTravelTimeMinutes <= 15:
			score += 10
		case c.NextTravelTimeMinutes > 45:
			score -= 10
		}
	}

	switch hour := c.Start.Hour(); {
	case hour >= 9 && hour < 11:
		score += 15 // morning prime
	case hour >= 14 && hour < 16:
		score += 10 // afternoon prime
	case hour >= 18:
		score -= 5
	}

	if !c.TrafficAdjusted {
		score += 5 // predictable traffic conditions
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

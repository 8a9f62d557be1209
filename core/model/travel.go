package model

// EstimateSource identifies where a travel estimate came from.
type EstimateSource string

const (
	// SourceCache marks an estimate served from the travel cache.
	SourceCache EstimateSource = "cache"
	// SourceProvider marks an estimate computed by the external provider.
	SourceProvider EstimateSource = "provider"
	// SourceEstimated marks an estimate produced by the local fallback.
	SourceEstimated EstimateSource = "estimated"
)

// TravelEstimate describes the expected travel between two location codes.
// DurationInTrafficMinutes is usually greater or equal to DurationMinutes but
// consumers must tolerate either ordering.
type TravelEstimate struct {
	DistanceKm               float64        `json:"distance_km"`
	DurationMinutes          int            `json:"duration_minutes"`
	DurationInTrafficMinutes int            `json:"duration_in_traffic_minutes"`
	ConfidenceScore          float64        `json:"confidence_score"`
	Source                   EstimateSource `json:"source"`
}

// TrafficRatio returns the ratio of traffic duration over free-flow duration,
// floored at 1 so heavy traffic can only inflate downstream buffers.
func (e TravelEstimate) TrafficRatio() float64 {
	if e.DurationMinutes <= 0 || e.DurationInTrafficMinutes <= 0 {
		return 1
	}
	r := float64(e.DurationInTrafficMinutes) / float64(e.DurationMinutes)
	if r < 1 {
		return 1
	}
	return r
}

package travel

import (
	"context"
	"time"

	"github.com/ygoas29/fieldway/core/model"
)

const (
	// StaleAfter is the age at which a cached estimate stops being served.
	// A stale entry is flagged expired and treated as a miss, forcing
	// re-resolution.
	StaleAfter = 24 * time.Hour
	// EvictAfter is the age at which the janitor sweep removes an entry.
	EvictAfter = 7 * 24 * time.Hour
)

// Entry is a cached travel estimate for one ordered location pair.
type Entry struct {
	Estimate     model.TravelEstimate `json:"estimate"`
	CalculatedAt time.Time            `json:"calculated_at"`
	Expired      bool                 `json:"is_expired"`
}

// Cache stores travel estimates keyed by the ordered (from, to) pair.
// Direction matters: A->B and B->A are independent entries. Put has upsert
// semantics, so at most one entry exists per pair.
type Cache interface {
	// Get returns the cached estimate, or false when the pair is absent,
	// stale or expired.
	Get(ctx context.Context, from, to string) (model.TravelEstimate, bool)
	// Put stores the estimate and resets the entry's calculation time.
	Put(ctx context.Context, from, to string, est model.TravelEstimate)
	// Sweep removes entries older than the given age and returns the count.
	Sweep(ctx context.Context, olderThan time.Duration) int
}

type pairKey struct {
	from, to string
}

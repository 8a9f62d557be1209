package travel

import (
	"context"
	"fmt"
	"time"
)

// Route is the raw answer of an external travel provider.
type Route struct {
	DistanceKm        float64
	Duration          time.Duration
	DurationInTraffic time.Duration
}

// Provider resolves a route between two location codes for a departure time.
// Implementations wrap a network service; a failure is reported as a
// ProviderError and the resolver falls back to local estimation.
type Provider interface {
	Route(ctx context.Context, from, to string, departure time.Time) (Route, error)
}

// ProviderError wraps a failed provider call. The resolver never surfaces it
// to callers; it only drives the fallback branch and observability.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("travel provider: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ygoas29/fieldway/core/model"
	"github.com/ygoas29/fieldway/core/travel"
)

func startRedis(ctx context.Context, t *testing.T) (tc.Container, string) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}
	host, err := cont.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := cont.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}
	return cont, host + ":" + port.Port()
}

func TestRedisCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cont, addr := startRedis(ctx, t)
	defer cont.Terminate(ctx)

	c, err := NewRedisCache(ctx, Config{Addr: addr, KeyPrefix: "test:travel:"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	est := model.TravelEstimate{
		DistanceKm:               15,
		DurationMinutes:          30,
		DurationInTrafficMinutes: 39,
		ConfidenceScore:          0.5,
		Source:                   model.SourceEstimated,
	}
	c.Put(ctx, "750", "745", est)

	got, ok := c.Get(ctx, "750", "745")
	if !ok {
		t.Fatalf("expected a hit")
	}
	if got.DurationMinutes != 30 || got.ConfidenceScore != 0.5 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	// Direction matters.
	if _, ok := c.Get(ctx, "745", "750"); ok {
		t.Fatalf("reverse direction must miss")
	}
}

func TestRedisCache_StalenessAndSweep(t *testing.T) {
	ctx := context.Background()
	cont, addr := startRedis(ctx, t)
	defer cont.Terminate(ctx)

	c, err := NewRedisCache(ctx, Config{Addr: addr, KeyPrefix: "test:travel:"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	c.Put(ctx, "750", "745", model.TravelEstimate{DurationMinutes: 30})

	// Age the clock past staleness but before eviction.
	c.now = func() time.Time { return time.Now().Add(travel.StaleAfter + time.Hour) }
	if _, ok := c.Get(ctx, "750", "745"); ok {
		t.Fatalf("a stale entry must be a miss")
	}
	// A second read observes the persisted expired flag.
	if _, ok := c.Get(ctx, "750", "745"); ok {
		t.Fatalf("the expired flag must persist")
	}

	// Beyond the eviction age the sweep removes the entry.
	c.now = func() time.Time { return time.Now().Add(travel.EvictAfter + time.Hour) }
	if removed := c.Sweep(ctx, travel.EvictAfter); removed != 1 {
		t.Fatalf("expected 1 eviction, got %d", removed)
	}
}

package test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ygoas29/fieldway/core/model"
	"github.com/ygoas29/fieldway/core/schedule"
	"github.com/ygoas29/fieldway/core/travel"
	"github.com/ygoas29/fieldway/infra/fixture"
	"github.com/ygoas29/fieldway/infra/logger"
	"github.com/ygoas29/fieldway/infra/mqtt"
	"github.com/ygoas29/fieldway/internal/eventbus"
)

const integrationFixture = `
vendors:
  - id: plumber-1
    name: Plumb Co
    location: "750"
    windows:
      - weekday: monday
        start: "09:00"
        end: "17:00"
        max_travel_minutes: 60
        preferred_buffer_minutes: 30
services:
  - id: boiler-check
    name: Boiler check
    duration_minutes: 90
entries:
  - id: existing
    vendor_id: plumber-1
    location: "745"
    scheduled_start: "2025-06-02T10:30:00Z"
    service_duration_minutes: 45
    travel_to_minutes: 30
    travel_from_minutes: 15
    status: confirmed
`

func newIntegrationEngine(t *testing.T, bus *eventbus.Bus[any]) *schedule.Engine {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(integrationFixture), 0o600))
	store, err := fixture.Load(path)
	require.NoError(t, err)

	cache := travel.NewMemoryCache()
	resolver := travel.NewResolver(cache, nil, logger.NopLogger{})
	eng, err := schedule.New(schedule.Config{}, store, store, store, resolver, cache, nil, bus, logger.NopLogger{})
	require.NoError(t, err)
	return eng
}

// Exercises the full path from a fixture file to scored, conflict-free
// candidates with travel resolved through the fallback estimator.
func TestEndToEnd_SlotsFromFixture(t *testing.T) {
	eng := newIntegrationEngine(t, nil)
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	slots, err := eng.GetSlots(context.Background(), "plumber-1", "boiler-check", "745", monday, 1)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	existing := model.CalendarEntry{
		ScheduledStart:         monday.Add(10*time.Hour + 30*time.Minute),
		ServiceDurationMinutes: 45,
		TravelTimeToMinutes:    30,
		TravelTimeFromMinutes:  15,
	}
	for _, s := range slots {
		require.False(t, s.Occupied().Overlaps(existing.Occupied()),
			"candidate %s overlaps the booked entry", s.Start)
		require.Equal(t, model.SourceEstimated, s.Travel.Source)
		require.InDelta(t, 0.5, s.Travel.ConfidenceScore, 1e-9)
		require.GreaterOrEqual(t, s.Score, 0.0)
		require.LessOrEqual(t, s.Score, 100.0)
	}

	// A repeated request resolves the same pairs from the cache.
	again, err := eng.GetSlots(context.Background(), "plumber-1", "boiler-check", "745", monday, 1)
	require.NoError(t, err)
	require.Len(t, again, len(slots))
	for i := range again {
		require.Equal(t, model.SourceCache, again[i].Travel.Source)
		require.True(t, again[i].Start.Equal(slots[i].Start))
	}
}

func TestEndToEnd_OptimizeAndReschedule(t *testing.T) {
	eng := newIntegrationEngine(t, nil)
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	report, err := eng.OptimizeDay(context.Background(), "plumber-1", monday)
	require.NoError(t, err)
	require.False(t, report.NothingToOptimize)
	require.Equal(t, 1, report.Entries)

	booking := model.Booking{
		ID:                     "b1",
		VendorID:               "plumber-1",
		Location:               "745",
		ScheduledStart:         monday.Add(14 * time.Hour),
		ServiceDurationMinutes: 45,
		TravelTimeToMinutes:    30,
	}
	decision, err := eng.ReconsiderBooking(context.Background(), booking, 90)
	require.NoError(t, err)
	require.Equal(t, schedule.ActionRescheduled, decision.Action)
	require.True(t, decision.NewStart.Equal(monday.Add(15*time.Hour)))
}

// Events flow from the engine through the bus into the MQTT forwarder.
func TestEndToEnd_EventsReachPublisher(t *testing.T) {
	bus := eventbus.New[any]()
	defer bus.Close()
	eng := newIntegrationEngine(t, bus)

	pub := mqtt.NewMockPublisher()
	fwd := mqtt.NewForwarder(pub, bus)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go fwd.Run(ctx)
	time.Sleep(20 * time.Millisecond)

	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	_, err := eng.GetSlots(context.Background(), "plumber-1", "boiler-check", "745", monday, 1)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(pub.Published(mqtt.TopicSlotsGenerated)) == 1
	}, time.Second, 10*time.Millisecond, "slots event not forwarded")
}

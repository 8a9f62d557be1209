package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ygoas29/fieldway/core/logger"
	"github.com/ygoas29/fieldway/core/model"
	"github.com/ygoas29/fieldway/core/travel"
)

// Generator enumerates feasible candidate slots inside a vendor's recurring
// availability windows, pruning everything that would collide with the
// existing calendar or exceed the window's travel ceiling.
type Generator struct {
	resolver *travel.Resolver
	calendar CalendarSource
	cfg      Config
	log      logger.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(resolver *travel.Resolver, calendar CalendarSource, cfg Config, log logger.Logger) *Generator {
	cfg.SetDefaults()
	return &Generator{resolver: resolver, calendar: calendar, cfg: cfg, log: log}
}

// Generate walks every day of the range and every matching availability
// window and probes candidate start times at the configured granularity.
// A window whose required travel exceeds its ceiling contributes no
// candidates at all. The result is ordered by start time and free of
// overlaps, both against the calendar and between candidates.
func (g *Generator) Generate(ctx context.Context, vendor model.Vendor, svc model.Service, customerLocation string, from time.Time, days int, windows []model.AvailabilityWindow) ([]model.CandidateSlot, error) {
	if days < 1 {
		days = 1
	}
	if days > g.cfg.MaxDaysAhead {
		days = g.cfg.MaxDaysAhead
	}

	probe := time.Duration(g.cfg.ProbeIntervalMinutes) * time.Minute
	serviceDur := time.Duration(svc.DurationMinutes) * time.Minute

	var slots []model.CandidateSlot
	for d := 0; d < days; d++ {
		date := from.AddDate(0, 0, d)
		entries, err := g.calendar.Entries(ctx, vendor.ID, date)
		if err != nil {
			return nil, fmt.Errorf("calendar for %s on %s: %w", vendor.ID, date.Format("2006-01-02"), err)
		}
		occupying := model.OccupyingEntries(entries)
		sort.Slice(occupying, func(i, j int) bool {
			return occupying[i].Occupied().Start.Before(occupying[j].Occupied().Start)
		})

		var accepted []model.CandidateSlot
		for _, w := range windows {
			if w.Weekday != date.Weekday() {
				continue
			}
			accepted = append(accepted, g.probeWindow(ctx, vendor, svc, customerLocation, w, date, probe, serviceDur, occupying, accepted)...)
		}
		slots = append(slots, accepted...)
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	return slots, nil
}

// probeWindow slides the probe across one window on one date. The already
// accepted candidates for the day are treated like calendar entries so two
// candidates never overlap each other.
func (g *Generator) probeWindow(ctx context.Context, vendor model.Vendor, svc model.Service, customerLocation string, w model.AvailabilityWindow, date time.Time, probe, serviceDur time.Duration, occupying []model.CalendarEntry, accepted []model.CandidateSlot) []model.CandidateSlot {
	origin := w.Location
	if origin == "" {
		origin = vendor.Location
	}

	windowStart := w.StartAt(date)
	windowEnd := w.EndAt(date)

	est := g.resolver.Resolve(ctx, origin, customerLocation, windowStart)
	if est.DurationMinutes > w.MaxTravelMinutes {
		g.log.Debugw("window excluded, travel over ceiling", map[string]any{
			"vendor":      vendor.ID,
			"date":        date.Format("2006-01-02"),
			"travel_min":  est.DurationMinutes,
			"ceiling_min": w.MaxTravelMinutes,
		})
		return nil
	}

	bufferMin, trafficAdjusted := AdjustBuffer(w.PreferredBufferMinutes, est, g.cfg.MinimumBreakMinutes)
	travelDur := time.Duration(est.DurationMinutes) * time.Minute
	bufferDur := time.Duration(bufferMin) * time.Minute
	// travel in + buffer + service + buffer + travel out
	totalOccupied := 2*travelDur + 2*bufferDur + serviceDur

	var out []model.CandidateSlot
	for t := windowStart; !t.Add(totalOccupied).After(windowEnd); t = t.Add(probe) {
		occ := model.Interval{Start: t.Add(-travelDur), End: t.Add(-travelDur).Add(totalOccupied)}
		if Conflicts(occ, occupying) {
			continue
		}
		if overlapsAccepted(occ, accepted) || overlapsAccepted(occ, out) {
			continue
		}

		slot := model.CandidateSlot{
			VendorID:        vendor.ID,
			ServiceID:       svc.ID,
			Location:        customerLocation,
			Start:           t,
			End:             t.Add(serviceDur),
			DepartBy:        occ.Start,
			FreeAgain:       occ.End,
			BufferMinutes:   bufferMin,
			TrafficAdjusted: trafficAdjusted,
			Travel:          est,
		}
		if next, ok := nextEntryAfter(occupying, occ.End); ok {
			onward := g.resolver.Resolve(ctx, customerLocation, next.Location, occ.End)
			slot.NextTravelTimeMinutes = onward.DurationMinutes
			slot.HasNextEntry = true
		}
		out = append(out, slot)
	}
	return out
}

func overlapsAccepted(occ model.Interval, slots []model.CandidateSlot) bool {
	for _, s := range slots {
		if occ.Overlaps(s.Occupied()) {
			return true
		}
	}
	return false
}

// nextEntryAfter returns the first entry whose occupied span starts at or
// after the given time. Entries must be sorted by occupied start.
func nextEntryAfter(entries []model.CalendarEntry, after time.Time) (model.CalendarEntry, bool) {
	for _, e := range entries {
		if !e.Occupied().Start.Before(after) {
			return e, true
		}
	}
	return model.CalendarEntry{}, false
}

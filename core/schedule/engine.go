package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/ygoas29/fieldway/core/logger"
	"github.com/ygoas29/fieldway/core/metrics"
	"github.com/ygoas29/fieldway/core/model"
	"github.com/ygoas29/fieldway/core/travel"
	"github.com/ygoas29/fieldway/internal/eventbus"
)

// Engine is the scheduling façade exposed to collaborators. It is stateless
// apart from the travel cache behind the resolver: every operation is a
// function of its inputs plus cache state.
type Engine struct {
	vendors   VendorDirectory
	services  ServiceCatalog
	calendar  CalendarSource
	resolver  *travel.Resolver
	cache     travel.Cache
	generator *Generator
	optimizer *Optimizer
	advisor   *Advisor
	cfg       Config
	log       logger.Logger
	sink      metrics.Sink
	bus       *eventbus.Bus[any]
}

// New creates an Engine. The bus and sink may be nil; core collaborator
// dependencies must be provided.
func New(cfg Config, vendors VendorDirectory, services ServiceCatalog, calendar CalendarSource, resolver *travel.Resolver, cache travel.Cache, sink metrics.Sink, bus *eventbus.Bus[any], log logger.Logger) (*Engine, error) {
	if vendors == nil || services == nil || calendar == nil || resolver == nil || cache == nil {
		return nil, fmt.Errorf("schedule: nil dependency provided to New")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("schedule config: %w", err)
	}
	return &Engine{
		vendors:   vendors,
		services:  services,
		calendar:  calendar,
		resolver:  resolver,
		cache:     cache,
		generator: NewGenerator(resolver, calendar, cfg, log),
		optimizer: NewOptimizer(resolver, cfg, log),
		advisor:   NewAdvisor(cfg, log),
		cfg:       cfg,
		log:       log,
		sink:      sink,
		bus:       bus,
	}, nil
}

// GetSlots generates scored candidate slots for the vendor, service and
// customer location over the requested range. An unknown vendor or service
// id is a hard error; a vendor without windows yields an empty list.
func (e *Engine) GetSlots(ctx context.Context, vendorID, serviceID, customerLocation string, date time.Time, daysAhead int) ([]model.CandidateSlot, error) {
	vendor, err := e.vendors.Vendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("vendor %s: %w", vendorID, err)
	}
	svc, err := e.services.Service(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("service %s: %w", serviceID, err)
	}
	windows, err := e.vendors.Windows(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("windows for %s: %w", vendorID, err)
	}
	if len(windows) == 0 {
		return []model.CandidateSlot{}, nil
	}

	started := time.Now()
	slots, err := e.generator.Generate(ctx, vendor, svc, customerLocation, date, daysAhead, windows)
	if err != nil {
		return nil, err
	}

	best := 0.0
	for i := range slots {
		slots[i].Score = Score(slots[i])
		if slots[i].Score > best {
			best = slots[i].Score
		}
	}

	if err := e.sink.RecordSlotGeneration(metrics.SlotGeneration{
		VendorID:         vendorID,
		ServiceID:        serviceID,
		CustomerLocation: customerLocation,
		Days:             daysAhead,
		Candidates:       len(slots),
		BestScore:        best,
		Elapsed:          time.Since(started),
		Time:             started,
	}); err != nil {
		e.log.Errorf("metrics error: %v", err)
	}
	if e.bus != nil {
		e.bus.Publish(SlotsGeneratedEvent{VendorID: vendorID, ServiceID: serviceID, Candidates: len(slots)})
	}
	e.log.Infof("generated %d candidates for vendor %s", len(slots), vendorID)
	return slots, nil
}

// SuggestBestSlot generates candidates for a single day and returns the
// max-scoring one. The boolean is false when the day yields no feasible
// slot, which is a valid outcome.
func (e *Engine) SuggestBestSlot(ctx context.Context, vendorID, serviceID, customerLocation string, date time.Time) (model.CandidateSlot, bool, error) {
	slots, err := e.GetSlots(ctx, vendorID, serviceID, customerLocation, date, 1)
	if err != nil {
		return model.CandidateSlot{}, false, err
	}
	if len(slots) == 0 {
		return model.CandidateSlot{}, false, nil
	}
	best := slots[0]
	for _, s := range slots[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	if e.bus != nil {
		e.bus.Publish(SlotSuggestedEvent{Slot: best})
	}
	return best, true, nil
}

// OptimizeDay analyses the vendor's booked day and reports inefficiencies.
func (e *Engine) OptimizeDay(ctx context.Context, vendorID string, date time.Time) (Report, error) {
	vendor, err := e.vendors.Vendor(ctx, vendorID)
	if err != nil {
		return Report{}, fmt.Errorf("vendor %s: %w", vendorID, err)
	}
	entries, err := e.calendar.Entries(ctx, vendorID, date)
	if err != nil {
		return Report{}, fmt.Errorf("calendar for %s: %w", vendorID, err)
	}
	return e.optimizer.OptimizeDay(ctx, vendor, date, entries), nil
}

// ReconsiderBooking reviews a booking against a live travel ETA change and
// returns the structured decision.
func (e *Engine) ReconsiderBooking(ctx context.Context, booking model.Booking, newETAMinutes int) (Decision, error) {
	if _, err := e.vendors.Vendor(ctx, booking.VendorID); err != nil {
		return Decision{}, fmt.Errorf("vendor %s: %w", booking.VendorID, err)
	}
	windows, err := e.vendors.Windows(ctx, booking.VendorID)
	if err != nil {
		return Decision{}, fmt.Errorf("windows for %s: %w", booking.VendorID, err)
	}

	decision := e.advisor.Reconsider(booking, newETAMinutes, windows)

	if rec, ok := e.sink.(metrics.RescheduleRecorder); ok {
		if err := rec.RecordReschedule(metrics.Reschedule{
			BookingID:    booking.ID,
			VendorID:     booking.VendorID,
			Action:       string(decision.Action),
			DeltaMinutes: decision.DeltaMinutes,
			Time:         time.Now(),
		}); err != nil {
			e.log.Errorf("metrics error: %v", err)
		}
	}
	if e.bus != nil {
		e.bus.Publish(RescheduleDecidedEvent{Decision: decision})
	}
	return decision, nil
}

// GetTravelEstimate is a direct passthrough for callers needing a one-off
// lookup; it shares the engine's cache and fallback semantics.
func (e *Engine) GetTravelEstimate(ctx context.Context, from, to string) model.TravelEstimate {
	est := e.resolver.Resolve(ctx, from, to, time.Time{})
	if rec, ok := e.sink.(metrics.ResolutionRecorder); ok {
		if err := rec.RecordResolution(metrics.Resolution{
			From:            from,
			To:              to,
			Source:          string(est.Source),
			DurationMinutes: est.DurationMinutes,
			Confidence:      est.ConfidenceScore,
			Time:            time.Now(),
		}); err != nil {
			e.log.Errorf("metrics error: %v", err)
		}
	}
	return est
}

// SweepCache hard-evicts travel cache entries past the eviction age and
// returns the number removed.
func (e *Engine) SweepCache(ctx context.Context) int {
	removed := e.cache.Sweep(ctx, travel.EvictAfter)
	if removed > 0 {
		e.log.Infof("swept %d expired travel estimates", removed)
	}
	return removed
}

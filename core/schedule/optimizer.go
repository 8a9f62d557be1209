package schedule

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ygoas29/fieldway/core/logger"
	"github.com/ygoas29/fieldway/core/model"
	"github.com/ygoas29/fieldway/core/travel"
)

// Suggestion types and severities emitted by the optimizer.
const (
	SuggestionExcessiveGap       = "excessive_gap"
	SuggestionInefficientRouting = "inefficient_routing"

	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Suggestion flags one inefficiency in a vendor's booked day.
type Suggestion struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	EntryID    string `json:"entry_id"`
	Detail     string `json:"detail"`
	GapMinutes int    `json:"gap_minutes,omitempty"`
}

// Report is the result of a day optimization pass.
type Report struct {
	VendorID string    `json:"vendor_id"`
	Date     time.Time `json:"date"`

	Entries             int `json:"entries"`
	TotalServiceMinutes int `json:"total_service_minutes"`
	TotalTravelMinutes  int `json:"total_travel_minutes"`
	TotalWorkingMinutes int `json:"total_working_minutes"`

	MeanGapMinutes   float64 `json:"mean_gap_minutes"`
	StdDevGapMinutes float64 `json:"stddev_gap_minutes"`

	Suggestions     []Suggestion `json:"suggestions"`
	EfficiencyScore float64      `json:"efficiency_score"`

	// NothingToOptimize is set for a day without occupying bookings; an
	// empty day is a valid outcome, not an error.
	NothingToOptimize bool `json:"nothing_to_optimize"`
}

// Optimizer analyses a vendor's already-booked day and rates how much of it
// is spent on billable service versus travel and idle gaps.
type Optimizer struct {
	resolver *travel.Resolver
	cfg      Config
	log      logger.Logger
}

// NewOptimizer creates an Optimizer.
func NewOptimizer(resolver *travel.Resolver, cfg Config, log logger.Logger) *Optimizer {
	cfg.SetDefaults()
	return &Optimizer{resolver: resolver, cfg: cfg, log: log}
}

// OptimizeDay inspects the occupying entries of one day in calendar order,
// flags oversized idle gaps and travel overruns and computes the efficiency
// score.
func (o *Optimizer) OptimizeDay(ctx context.Context, vendor model.Vendor, date time.Time, entries []model.CalendarEntry) Report {
	report := Report{VendorID: vendor.ID, Date: date, Suggestions: []Suggestion{}}

	occupying := model.OccupyingEntries(entries)
	if len(occupying) == 0 {
		report.NothingToOptimize = true
		return report
	}
	sort.Slice(occupying, func(i, j int) bool {
		return occupying[i].Occupied().Start.Before(occupying[j].Occupied().Start)
	})
	report.Entries = len(occupying)

	var gaps []float64
	prevLocation := vendor.Location
	for i, e := range occupying {
		report.TotalServiceMinutes += e.ServiceDurationMinutes
		report.TotalTravelMinutes += e.TravelTimeToMinutes + e.TravelTimeFromMinutes

		if i > 0 {
			gap := occupying[i].Occupied().Start.Sub(occupying[i-1].Occupied().End)
			gaps = append(gaps, gap.Minutes())
			// Compare durations, not truncated minutes, so a gap a few
			// seconds past the threshold is still flagged.
			if gap > time.Duration(o.cfg.ExcessiveGapMinutes)*time.Minute {
				gapMin := int(math.Round(gap.Minutes()))
				severity := SeverityLow
				if gap > time.Duration(o.cfg.MediumGapMinutes)*time.Minute {
					severity = SeverityMedium
				}
				report.Suggestions = append(report.Suggestions, Suggestion{
					Type:       SuggestionExcessiveGap,
					Severity:   severity,
					EntryID:    e.ID,
					Detail:     fmt.Sprintf("%d idle minutes before entry", gapMin),
					GapMinutes: gapMin,
				})
			}
		}

		expected := o.resolver.Resolve(ctx, prevLocation, e.Location, e.Occupied().Start)
		if expected.DurationMinutes > 0 &&
			float64(e.TravelTimeToMinutes) > float64(expected.DurationMinutes)*o.cfg.TravelOverrunRatio {
			report.Suggestions = append(report.Suggestions, Suggestion{
				Type:     SuggestionInefficientRouting,
				Severity: SeverityHigh,
				EntryID:  e.ID,
				Detail: fmt.Sprintf("recorded travel %d min vs expected %d min",
					e.TravelTimeToMinutes, expected.DurationMinutes),
			})
		}
		prevLocation = e.Location
	}

	if len(gaps) > 0 {
		report.MeanGapMinutes = stat.Mean(gaps, nil)
		if len(gaps) > 1 {
			report.StdDevGapMinutes = stat.StdDev(gaps, nil)
		}
	}

	working := occupying[len(occupying)-1].Occupied().End.Sub(occupying[0].Occupied().Start)
	report.TotalWorkingMinutes = int(working.Minutes())
	report.EfficiencyScore = efficiencyScore(report.TotalServiceMinutes, report.TotalTravelMinutes, report.TotalWorkingMinutes)

	o.log.Debugw("day optimized", map[string]any{
		"vendor":      vendor.ID,
		"date":        date.Format("2006-01-02"),
		"entries":     report.Entries,
		"efficiency":  report.EfficiencyScore,
		"suggestions": len(report.Suggestions),
	})
	return report
}

// efficiencyScore rates the share of working time spent on service, with a
// capped penalty for the share spent travelling. Clamped to [0,100].
func efficiencyScore(serviceMin, travelMin, workingMin int) float64 {
	if workingMin <= 0 {
		return 0
	}
	service := float64(serviceMin) / float64(workingMin) * 100
	penalty := float64(travelMin) / float64(workingMin) * 100
	if penalty > 20 {
		penalty = 20
	}
	score := service - penalty
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/ygoas29/fieldway/core/model"
	"github.com/ygoas29/fieldway/core/travel"
	"github.com/ygoas29/fieldway/infra/logger"
)

func newTestOptimizer() *Optimizer {
	resolver := travel.NewResolver(travel.NewMemoryCache(), nil, logger.NopLogger{})
	return NewOptimizer(resolver, Config{}, logger.NopLogger{})
}

func TestOptimizeDay_EmptyDay(t *testing.T) {
	o := newTestOptimizer()
	report := o.OptimizeDay(context.Background(), model.Vendor{ID: "v1", Location: "750"}, monday, nil)
	if !report.NothingToOptimize {
		t.Fatalf("an empty day must be flagged nothing-to-optimize")
	}
	if len(report.Suggestions) != 0 || report.EfficiencyScore != 0 {
		t.Fatalf("empty day must carry no findings, got %+v", report)
	}
}

func TestOptimizeDay_FlagsGaps(t *testing.T) {
	o := newTestOptimizer()
	entries := []model.CalendarEntry{
		entryOccupying("a", at(monday, 9, 0), at(monday, 10, 0)),
		entryOccupying("b", at(monday, 11, 30), at(monday, 12, 30)),  // 90 min gap
		entryOccupying("c", at(monday, 15, 0), at(monday, 16, 0)),    // 150 min gap
		entryOccupying("d", at(monday, 16, 30), at(monday, 17, 30)),  // 30 min gap, fine
	}
	report := o.OptimizeDay(context.Background(), model.Vendor{ID: "v1", Location: "750"}, monday, entries)

	if report.Entries != 4 {
		t.Fatalf("expected 4 occupying entries, got %d", report.Entries)
	}
	var low, medium int
	for _, s := range report.Suggestions {
		if s.Type != SuggestionExcessiveGap {
			t.Fatalf("unexpected suggestion %+v", s)
		}
		switch s.Severity {
		case SeverityLow:
			low++
		case SeverityMedium:
			medium++
		}
	}
	if low != 1 || medium != 1 {
		t.Fatalf("expected one low and one medium gap, got low=%d medium=%d", low, medium)
	}
	if report.MeanGapMinutes != 90 {
		t.Fatalf("expected mean gap 90, got %v", report.MeanGapMinutes)
	}
}

func TestOptimizeDay_FlagsSubMinuteGapExcess(t *testing.T) {
	o := newTestOptimizer()
	entries := []model.CalendarEntry{
		entryOccupying("a", at(monday, 9, 0), at(monday, 10, 0)),
		// 60 minutes and 54 seconds of idle time: past the threshold even
		// though the whole-minute count is exactly 60.
		entryOccupying("b", at(monday, 11, 0).Add(54*time.Second), at(monday, 12, 0)),
	}
	report := o.OptimizeDay(context.Background(), model.Vendor{ID: "v1", Location: "750"}, monday, entries)

	if len(report.Suggestions) != 1 {
		t.Fatalf("expected one gap suggestion, got %+v", report.Suggestions)
	}
	s := report.Suggestions[0]
	if s.Type != SuggestionExcessiveGap || s.Severity != SeverityLow {
		t.Fatalf("unexpected suggestion %+v", s)
	}
	if s.GapMinutes != 61 {
		t.Fatalf("expected the gap rounded to 61 minutes, got %d", s.GapMinutes)
	}
}

func TestOptimizeDay_FlagsInefficientRouting(t *testing.T) {
	o := newTestOptimizer()
	entry := entryOccupying("a", at(monday, 9, 0), at(monday, 10, 0))
	entry.Location = "745" // expected 750->745 is 30 min
	entry.TravelTimeToMinutes = 100
	report := o.OptimizeDay(context.Background(), model.Vendor{ID: "v1", Location: "750"}, monday, []model.CalendarEntry{entry})

	found := false
	for _, s := range report.Suggestions {
		if s.Type == SuggestionInefficientRouting && s.Severity == SeverityHigh {
			found = true
		}
	}
	if !found {
		t.Fatalf("recorded travel of 100 min vs expected 30 must be flagged, got %+v", report.Suggestions)
	}
}

func TestOptimizeDay_EfficiencyBounds(t *testing.T) {
	o := newTestOptimizer()
	vendor := model.Vendor{ID: "v1", Location: "750"}

	// Back-to-back service-only day: high efficiency, still <= 100.
	dense := []model.CalendarEntry{
		entryOccupying("a", at(monday, 9, 0), at(monday, 12, 0)),
		entryOccupying("b", at(monday, 12, 0), at(monday, 15, 0)),
	}
	report := o.OptimizeDay(context.Background(), vendor, monday, dense)
	if report.EfficiencyScore <= 0 || report.EfficiencyScore > 100 {
		t.Fatalf("efficiency out of bounds: %v", report.EfficiencyScore)
	}

	// Travel-dominated day: the travel penalty is capped at 20 and the
	// score floors at 0.
	travelHeavy := model.CalendarEntry{
		ID:                     "t",
		VendorID:               "v1",
		Location:               "750",
		ScheduledStart:         at(monday, 10, 0),
		ServiceDurationMinutes: 10,
		TravelTimeToMinutes:    60,
		TravelTimeFromMinutes:  60,
		Status:                 model.StatusConfirmed,
	}
	report = o.OptimizeDay(context.Background(), vendor, monday, []model.CalendarEntry{travelHeavy})
	if report.EfficiencyScore < 0 || report.EfficiencyScore > 100 {
		t.Fatalf("efficiency out of bounds: %v", report.EfficiencyScore)
	}
}

func TestOptimizeDay_IgnoresNonOccupyingEntries(t *testing.T) {
	o := newTestOptimizer()
	cancelled := entryOccupying("x", at(monday, 9, 0), at(monday, 10, 0))
	cancelled.Status = model.StatusCancelled
	completed := entryOccupying("y", at(monday, 10, 0), at(monday, 11, 0))
	completed.Status = model.StatusCompleted

	report := o.OptimizeDay(context.Background(), model.Vendor{ID: "v1", Location: "750"}, monday,
		[]model.CalendarEntry{cancelled, completed})
	if !report.NothingToOptimize {
		t.Fatalf("cancelled and completed entries must not count")
	}
}

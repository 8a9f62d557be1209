package schedule

import (
	"testing"
	"time"

	"github.com/ygoas29/fieldway/core/model"
)

// monday is the fixed reference day used across the package tests.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func at(base time.Time, hour, minute int) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location())
}

// entryOccupying builds a calendar entry whose occupied interval is exactly
// [start, end).
func entryOccupying(id string, start, end time.Time) model.CalendarEntry {
	return model.CalendarEntry{
		ID:                     id,
		VendorID:               "v1",
		Location:               "750",
		ScheduledStart:         start,
		ServiceDurationMinutes: int(end.Sub(start).Minutes()),
		Status:                 model.StatusConfirmed,
	}
}

func TestConflicts(t *testing.T) {
	entries := []model.CalendarEntry{
		entryOccupying("a", at(monday, 10, 0), at(monday, 11, 30)),
		entryOccupying("b", at(monday, 13, 0), at(monday, 14, 30)),
	}

	overlapping := model.Interval{Start: at(monday, 11, 0), End: at(monday, 12, 0)}
	if !Conflicts(overlapping, entries) {
		t.Fatalf("[11:00,12:00) must conflict with [10:00,11:30)")
	}

	between := model.Interval{Start: at(monday, 11, 30), End: at(monday, 13, 0)}
	if Conflicts(between, entries) {
		t.Fatalf("[11:30,13:00) touches both entries but must not conflict")
	}
}

func TestConflicts_TouchingEndpoints(t *testing.T) {
	entries := []model.CalendarEntry{
		entryOccupying("a", at(monday, 9, 0), at(monday, 10, 0)),
	}
	touching := model.Interval{Start: at(monday, 10, 0), End: at(monday, 11, 0)}
	if Conflicts(touching, entries) {
		t.Fatalf("half-open comparison: touching endpoints do not conflict")
	}
}

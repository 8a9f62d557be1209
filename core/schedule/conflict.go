package schedule

import "github.com/ygoas29/fieldway/core/model"

// Conflicts reports whether the candidate interval overlaps the occupied
// interval of any entry. Entries are expected to be pre-filtered to the
// statuses that consume vendor time; comparison is half-open, so touching
// endpoints do not conflict.
func Conflicts(candidate model.Interval, entries []model.CalendarEntry) bool {
	for _, e := range entries {
		if candidate.Overlaps(e.Occupied()) {
			return true
		}
	}
	return false
}

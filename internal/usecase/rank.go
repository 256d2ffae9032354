package usecase

import (
	"sort"
	"time"

	"github.com/user/event-aggregator/internal/domain"
)

// SortByDate orders events by ascending calendar date, in place. The sort
// is stable: events on the same day keep their prior relative order, which
// preserves the deduplicator's source ordering. Missing or unparseable
// dates sort earliest.
func SortByDate(events []domain.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return sortDate(events[i]).Before(sortDate(events[j]))
	})
}

func sortDate(e domain.Event) time.Time {
	if e.Date == "" {
		return time.Time{}
	}
	d, err := time.ParseInLocation(domain.DateLayout, e.Date, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return d
}

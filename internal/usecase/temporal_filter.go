package usecase

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/user/event-aggregator/internal/domain"
)

// timePattern matches 12-hour display times such as "7:05 PM" or "11:59pm".
var timePattern = regexp.MustCompile(`(?i)(\d+):(\d+)\s*(AM|PM)`)

// FilterCurrent drops events that have fully elapsed by now. Providers
// report time precision inconsistently, so the end instant is resolved from
// the best data available, in priority order: an explicit UTC instant, an
// explicit end date, the calendar date combined with a parsed 12-hour
// display time, or the end of the calendar date. Events with no date at all
// cannot be judged expired and are always kept.
func FilterCurrent(events []domain.Event, now time.Time) []domain.Event {
	kept := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if e.Date == "" || eventEnd(e).After(now) {
			kept = append(kept, e)
		}
	}
	return kept
}

// eventEnd resolves the instant at which an event is considered over.
// Callers must ensure e.Date is non-empty.
func eventEnd(e domain.Event) time.Time {
	if e.UTCDateTime != nil {
		return *e.UTCDateTime
	}
	if e.EndDate != nil {
		return *e.EndDate
	}

	day, err := time.ParseInLocation(domain.DateLayout, e.Date, time.UTC)
	if err != nil {
		// Unparseable dates compare as already elapsed.
		return time.Time{}
	}

	if e.Time != "" && e.Time != domain.TimeTBA {
		if m := timePattern.FindStringSubmatch(e.Time); m != nil {
			hour, _ := strconv.Atoi(m[1])
			minute, _ := strconv.Atoi(m[2])
			// 12 AM is hour 0; PM adds 12 except for 12 PM itself.
			if strings.EqualFold(m[3], "PM") {
				if hour != 12 {
					hour += 12
				}
			} else if hour == 12 {
				hour = 0
			}
			return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
		}
	}

	// No usable time of day: the event lasts until the end of its calendar
	// date, so a same-day event is never dropped prematurely.
	return day.Add(24*time.Hour - time.Millisecond)
}

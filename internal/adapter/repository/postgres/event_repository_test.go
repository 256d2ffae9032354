package postgres

import (
	"testing"

	"github.com/user/event-aggregator/internal/domain"
)

func coordPtr(v float64) *float64 { return &v }

func TestKeepWeekend(t *testing.T) {
	events := []domain.Event{
		{Title: "Friday Show", Date: "2025-06-06"},
		{Title: "Saturday Market", Date: "2025-06-07"},
		{Title: "Sunday Brunch", Date: "2025-06-08"},
		{Title: "Monday Meeting", Date: "2025-06-09"},
		{Title: "Garbled", Date: "not-a-date"},
	}

	got := keepWeekend(events)
	if len(got) != 2 {
		t.Fatalf("expected 2 weekend events, got %d", len(got))
	}
	if got[0].Title != "Saturday Market" || got[1].Title != "Sunday Brunch" {
		t.Errorf("kept = [%s %s], want the Saturday and Sunday events", got[0].Title, got[1].Title)
	}
}

func TestKeepWithinRadius(t *testing.T) {
	// Centered on downtown Arlington with a 10 mile radius: the stadium is
	// about 1.7 miles away, downtown Dallas about 19.
	events := []domain.Event{
		{Title: "Stadium Game", Latitude: coordPtr(32.7472), Longitude: coordPtr(-97.0833)},
		{Title: "Dallas Concert", Latitude: coordPtr(32.7767), Longitude: coordPtr(-96.7970)},
		{Title: "Venue Unknown"},
		{Title: "Half Located", Latitude: coordPtr(32.7400)},
	}

	got := keepWithinRadius(events, 32.7357, -97.1081, 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	for _, e := range got {
		if e.Title == "Dallas Concert" {
			t.Error("event outside the radius was kept")
		}
	}

	// Events without a full coordinate pair cannot be placed and are never
	// excluded by the radius filter.
	var unplaced int
	for _, e := range got {
		if e.Latitude == nil || e.Longitude == nil {
			unplaced++
		}
	}
	if unplaced != 2 {
		t.Errorf("unplaced events kept = %d, want 2", unplaced)
	}
}

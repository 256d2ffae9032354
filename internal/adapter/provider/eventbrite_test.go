package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/user/event-aggregator/internal/domain"
)

func newTestEventbrite(t *testing.T, handler http.HandlerFunc) *Eventbrite {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewEventbrite(EventbriteConfig{
		APIKey:  "eb-token",
		BaseURL: srv.URL,
	}, testLogger())
}

func TestEventbriteFetchEvents(t *testing.T) {
	var gotAuth string
	eb := newTestEventbrite(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{
			"events": []map[string]any{
				{
					"id":          "555",
					"name":        map[string]any{"text": "Community Charity Gala"},
					"description": map[string]any{"text": "An evening supporting local shelters."},
					"url":         "https://eventbrite.example/555",
					"status":      "live",
					"is_free":     false,
					"start": map[string]any{
						"utc":   "2025-06-07T01:00:00Z",
						"local": "2025-06-06T20:00:00",
					},
					"end":      map[string]any{"utc": "2025-06-07T04:00:00Z"},
					"category": map[string]any{"name": "Charity & Causes"},
					"logo":     map[string]any{"url": "https://img.example/gala.jpg"},
					"venue": map[string]any{
						"name":      "Grand Ballroom",
						"latitude":  "32.7400",
						"longitude": "-97.1100",
						"address": map[string]any{
							"address_1":   "100 Main St",
							"city":        "Arlington",
							"region":      "TX",
							"postal_code": "76010",
						},
					},
				},
			},
		})
	})

	events, err := eb.FetchEvents(context.Background(), testGeoQuery())
	if err != nil {
		t.Fatalf("FetchEvents() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if gotAuth != "Bearer eb-token" {
		t.Errorf("Authorization = %q, want Bearer eb-token", gotAuth)
	}

	e := events[0]
	if e.ID != "eb_555" {
		t.Errorf("ID = %q, want eb_555", e.ID)
	}
	if e.Category != domain.CategoryCommunity {
		t.Errorf("Category = %q, want community from the charity keyword", e.Category)
	}
	if e.Date != "2025-06-07" {
		t.Errorf("Date = %q, want the UTC date 2025-06-07", e.Date)
	}
	if e.UTCDateTime == nil || !e.UTCDateTime.Equal(time.Date(2025, 6, 7, 1, 0, 0, 0, time.UTC)) {
		t.Errorf("UTCDateTime = %v, want 2025-06-07T01:00:00Z", e.UTCDateTime)
	}
	if e.Time != "8:00 PM" {
		t.Errorf("Time = %q, want the local display time 8:00 PM", e.Time)
	}
	if e.EndDate == nil || !e.EndDate.Equal(time.Date(2025, 6, 7, 4, 0, 0, 0, time.UTC)) {
		t.Errorf("EndDate = %v, want 2025-06-07T04:00:00Z", e.EndDate)
	}
	if e.TicketStatus != domain.TicketAvailable {
		t.Errorf("TicketStatus = %q, want available for a live event", e.TicketStatus)
	}
	if e.Price != nil {
		t.Errorf("Price = %v, want nil for a paid event with no listed price", *e.Price)
	}
	if e.Latitude == nil || *e.Latitude != 32.74 {
		t.Errorf("Latitude = %v, want 32.74 parsed from a string", e.Latitude)
	}
	if e.Location != "Grand Ballroom" || e.City != "Arlington" || e.State != "TX" || e.ZipCode != "76010" {
		t.Errorf("venue fields = %q %q %q %q", e.Location, e.City, e.State, e.ZipCode)
	}
}

func TestEventbriteNormalizeFallbacks(t *testing.T) {
	eb := newTestEventbrite(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"events": []map[string]any{
				{
					// Free event with no name, no description, draft status.
					"id":      "777",
					"is_free": true,
					"status":  "draft",
					"start":   map[string]any{"utc": "2025-06-10T18:00:00Z"},
				},
				{
					// No start timestamp; must be skipped.
					"id":   "778",
					"name": map[string]any{"text": "Timeless Event"},
				},
			},
		})
	})

	events, err := eb.FetchEvents(context.Background(), testGeoQuery())
	if err != nil {
		t.Fatalf("FetchEvents() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected only the dated event, got %d", len(events))
	}

	e := events[0]
	if e.Title != "Untitled Event" {
		t.Errorf("Title = %q, want Untitled Event", e.Title)
	}
	if e.Description != "No description available" {
		t.Errorf("Description = %q, want placeholder", e.Description)
	}
	if e.Time != domain.TimeTBA {
		t.Errorf("Time = %q, want TBA without a local timestamp", e.Time)
	}
	if e.TicketStatus != domain.TicketComingSoon {
		t.Errorf("TicketStatus = %q, want coming_soon for a non-live event", e.TicketStatus)
	}
	if e.Price == nil || *e.Price != "0" {
		t.Errorf("Price = %v, want the explicit free marker 0", e.Price)
	}
	if e.Location != "Venue TBA" {
		t.Errorf("Location = %q, want Venue TBA", e.Location)
	}
}

func TestMapEventbriteCategory(t *testing.T) {
	tests := []struct {
		name string
		want domain.Category
	}{
		{"Performing & Visual Arts", domain.CategoryArts},
		{"Sports & Fitness", domain.CategorySports},
		{"Community & Culture", domain.CategoryArts},
		{"Networking", domain.CategoryCommunity},
		{"Business & Professional", domain.CategoryGovernment},
		{"Food & Drink", domain.CategoryEntertainment},
		{"", domain.CategoryEntertainment},
	}

	for _, tt := range tests {
		if got := mapEventbriteCategory(tt.name); got != tt.want {
			t.Errorf("mapEventbriteCategory(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEventbriteUnconfiguredReturnsNothing(t *testing.T) {
	eb := NewEventbrite(EventbriteConfig{}, testLogger())
	events, err := eb.FetchEvents(context.Background(), testGeoQuery())
	if err != nil || events != nil {
		t.Errorf("FetchEvents() = %v, %v; want nil, nil", events, err)
	}
}

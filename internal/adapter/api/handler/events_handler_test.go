package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/user/event-aggregator/internal/domain"
	"github.com/user/event-aggregator/internal/domain/mocks"
	"github.com/user/event-aggregator/internal/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(store *mocks.MockEventStore, providers []domain.EventProvider) *EventsHandler {
	uc := usecase.NewAggregateEventsUseCase(store, providers, nil, testLogger(), nil, time.Second, 50, 100)
	return NewEventsHandler(uc, store, testLogger())
}

func TestCombinedReturnsEvents(t *testing.T) {
	nextWeek := time.Now().UTC().AddDate(0, 0, 7).Format(domain.DateLayout)
	store := &mocks.MockEventStore{
		QueryResult: []domain.Event{
			{ID: "loc_1", Title: "Farmers Market", Date: nextWeek, Source: domain.SourceLocal},
		},
	}
	h := newTestHandler(store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/events/combined", nil)
	rec := httptest.NewRecorder()
	h.Combined(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var events []domain.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("response is not a JSON array: %v", err)
	}
	if len(events) != 1 || events[0].ID != "loc_1" {
		t.Errorf("events = %v, want [loc_1]", events)
	}
}

func TestCombinedEmptyFeedIsJSONArray(t *testing.T) {
	h := newTestHandler(&mocks.MockEventStore{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/events/combined", nil)
	rec := httptest.NewRecorder()
	h.Combined(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want an empty JSON array", got)
	}
}

func TestCombinedBadParams(t *testing.T) {
	h := newTestHandler(&mocks.MockEventStore{}, nil)

	tests := []string{
		"/api/events/combined?userLatitude=north",
		"/api/events/combined?userLongitude=west",
		"/api/events/combined?minPrice=cheap",
		"/api/events/combined?maxPrice=expensive",
		"/api/events/combined?radius=-5",
		"/api/events/combined?radius=wide",
	}

	for _, target := range tests {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		h.Combined(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
			t.Errorf("%s: expected a JSON error body, got %q", target, rec.Body.String())
		}
	}
}

func TestCombinedStoreFailure(t *testing.T) {
	store := &mocks.MockEventStore{QueryErr: errors.New("connection refused")}
	h := newTestHandler(store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/events/combined", nil)
	rec := httptest.NewRecorder()
	h.Combined(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if body["error"] != "Failed to fetch events" {
		t.Errorf("error = %q, want the generic message", body["error"])
	}
}

func TestParseFeedQueryFilters(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/events/combined?userLatitude=32.7&userLongitude=-97.1&radius=25"+
			"&categories=sports,%20arts,bogus&ticketProviders=Ticketmaster,%20SeatGeek&minPrice=10&maxPrice=99.5", nil)

	q, err := parseFeedQuery(req)
	if err != nil {
		t.Fatalf("parseFeedQuery() error = %v", err)
	}

	if q.UserLatitude == nil || *q.UserLatitude != 32.7 || q.UserLongitude == nil || *q.UserLongitude != -97.1 {
		t.Errorf("coords = %v, %v", q.UserLatitude, q.UserLongitude)
	}
	if q.RadiusMiles != 25 {
		t.Errorf("RadiusMiles = %d, want 25", q.RadiusMiles)
	}
	if len(q.Categories) != 2 || q.Categories[0] != domain.CategorySports || q.Categories[1] != domain.CategoryArts {
		t.Errorf("Categories = %v, want valid entries only", q.Categories)
	}
	if len(q.Providers) != 2 || q.Providers[0] != "Ticketmaster" || q.Providers[1] != "SeatGeek" {
		t.Errorf("Providers = %v", q.Providers)
	}
	if q.MinPrice == nil || *q.MinPrice != 10 || q.MaxPrice == nil || *q.MaxPrice != 99.5 {
		t.Errorf("price bounds = %v, %v", q.MinPrice, q.MaxPrice)
	}
}

func TestCategoryCounts(t *testing.T) {
	store := &mocks.MockEventStore{
		Counts: map[string]int{"all": 12, "sports": 5, "arts": 7},
	}
	h := newTestHandler(store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/categories/counts", nil)
	rec := httptest.NewRecorder()
	h.CategoryCounts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var counts map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if counts["all"] != 12 || counts["sports"] != 5 {
		t.Errorf("counts = %v", counts)
	}
}

func TestCategoryCountsFailure(t *testing.T) {
	store := &mocks.MockEventStore{CountErr: errors.New("connection refused")}
	h := newTestHandler(store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/categories/counts", nil)
	rec := httptest.NewRecorder()
	h.CategoryCounts(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

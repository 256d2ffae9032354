package usecase

import (
	"reflect"
	"testing"

	"github.com/user/event-aggregator/internal/domain"
)

func TestSortByDate(t *testing.T) {
	events := []domain.Event{
		{Title: "C", Date: "2025-06-03"},
		{Title: "A", Date: "2025-06-01"},
		{Title: "B", Date: "2025-06-02"},
	}

	SortByDate(events)

	want := []string{"A", "B", "C"}
	if got := titles(events); !reflect.DeepEqual(got, want) {
		t.Errorf("SortByDate() order = %v, want %v", got, want)
	}
}

func TestSortByDateStableWithinDay(t *testing.T) {
	events := []domain.Event{
		{Title: "First", Date: "2025-06-01"},
		{Title: "Second", Date: "2025-06-01"},
		{Title: "Third", Date: "2025-06-01"},
	}

	SortByDate(events)

	want := []string{"First", "Second", "Third"}
	if got := titles(events); !reflect.DeepEqual(got, want) {
		t.Errorf("SortByDate() reordered same-day events: %v, want %v", got, want)
	}
}

func TestSortByDateMissingDateFirst(t *testing.T) {
	events := []domain.Event{
		{Title: "Dated", Date: "2025-06-01"},
		{Title: "Undated"},
		{Title: "Garbled", Date: "not-a-date"},
	}

	SortByDate(events)

	if events[2].Title != "Dated" {
		t.Errorf("expected the dated event last, got %v", titles(events))
	}
}

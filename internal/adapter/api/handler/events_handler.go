package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/user/event-aggregator/internal/domain"
	"github.com/user/event-aggregator/internal/usecase"
)

// EventsHandler serves the combined event feed and category counts.
type EventsHandler struct {
	aggregate *usecase.AggregateEventsUseCase
	store     domain.EventStore
	logger    *slog.Logger
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(aggregate *usecase.AggregateEventsUseCase, store domain.EventStore, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		aggregate: aggregate,
		store:     store,
		logger:    logger,
	}
}

// Combined handles GET /api/events/combined. The response is always a JSON
// array; partial provider outages are invisible beyond a smaller result
// set, and only a local store failure produces a 500.
func (h *EventsHandler) Combined(w http.ResponseWriter, r *http.Request) {
	query, err := parseFeedQuery(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	events, err := h.aggregate.Aggregate(r.Context(), query)
	if err != nil {
		h.logger.Error("failed to aggregate events", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	if events == nil {
		events = []domain.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// CategoryCounts handles GET /api/categories/counts.
func (h *EventsHandler) CategoryCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.CountByCategory(r.Context())
	if err != nil {
		h.logger.Error("failed to count events by category", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to count events")
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func parseFeedQuery(r *http.Request) (domain.FeedQuery, error) {
	params := r.URL.Query()
	query := domain.FeedQuery{}

	var err error
	if query.UserLatitude, err = parseFloatParam(params.Get("userLatitude"), "userLatitude"); err != nil {
		return query, err
	}
	if query.UserLongitude, err = parseFloatParam(params.Get("userLongitude"), "userLongitude"); err != nil {
		return query, err
	}
	if query.MinPrice, err = parseFloatParam(params.Get("minPrice"), "minPrice"); err != nil {
		return query, err
	}
	if query.MaxPrice, err = parseFloatParam(params.Get("maxPrice"), "maxPrice"); err != nil {
		return query, err
	}

	if raw := params.Get("radius"); raw != "" {
		radius, err := strconv.Atoi(raw)
		if err != nil || radius <= 0 {
			return query, &paramError{"radius"}
		}
		query.RadiusMiles = radius
	}

	if raw := params.Get("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			c := domain.Category(strings.TrimSpace(part))
			if c.IsValid() {
				query.Categories = append(query.Categories, c)
			}
		}
	}
	if raw := params.Get("ticketProviders"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				query.Providers = append(query.Providers, p)
			}
		}
	}

	return query, nil
}

type paramError struct {
	name string
}

func (e *paramError) Error() string {
	return "invalid query parameter: " + e.name
}

func parseFloatParam(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &paramError{name}
	}
	return &v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

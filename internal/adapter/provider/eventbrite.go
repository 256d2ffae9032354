package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/user/event-aggregator/internal/domain"
)

const eventbriteBaseURL = "https://www.eventbriteapi.com/v3"

// eventbriteKeywords maps category-name keywords onto the app's closed
// category set. Eventbrite's taxonomy is free-form, so matching is by
// substring rather than exact name.
var eventbriteKeywords = []struct {
	keywords []string
	category domain.Category
}{
	{[]string{"art", "culture", "museum", "theatre", "theater", "film"}, domain.CategoryArts},
	{[]string{"sport", "fitness", "running", "yoga"}, domain.CategorySports},
	{[]string{"community", "networking", "meetup", "charity", "volunteer", "fundrais"}, domain.CategoryCommunity},
	{[]string{"business", "conference", "seminar", "professional"}, domain.CategoryGovernment},
}

type eventbriteResponse struct {
	Events []eventbriteEvent `json:"events"`
}

type eventbriteEvent struct {
	ID   string `json:"id"`
	Name struct {
		Text string `json:"text"`
	} `json:"name"`
	Description struct {
		Text string `json:"text"`
	} `json:"description"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
	Status  string `json:"status"`
	IsFree  bool   `json:"is_free"`
	Start   struct {
		UTC   string `json:"utc"`
		Local string `json:"local"`
	} `json:"start"`
	End struct {
		UTC string `json:"utc"`
	} `json:"end"`
	Category struct {
		Name string `json:"name"`
	} `json:"category"`
	Logo struct {
		URL string `json:"url"`
	} `json:"logo"`
	Venue struct {
		Name      string     `json:"name"`
		Latitude  *flexFloat `json:"latitude"`
		Longitude *flexFloat `json:"longitude"`
		Address   struct {
			Address1   string `json:"address_1"`
			City       string `json:"city"`
			Region     string `json:"region"`
			PostalCode string `json:"postal_code"`
		} `json:"address"`
	} `json:"venue"`
}

// EventbriteConfig configures the Eventbrite API adapter.
type EventbriteConfig struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
}

// Eventbrite adapts the Eventbrite search API to the normalized event model.
type Eventbrite struct {
	cfg    EventbriteConfig
	client *apiClient
	logger *slog.Logger
}

// NewEventbrite creates an Eventbrite adapter.
func NewEventbrite(cfg EventbriteConfig, logger *slog.Logger) *Eventbrite {
	if cfg.BaseURL == "" {
		cfg.BaseURL = eventbriteBaseURL
	}
	return &Eventbrite{
		cfg:    cfg,
		client: newAPIClient(cfg.Timeout, cfg.RateLimit),
		logger: logger.With("component", "eventbrite_provider"),
	}
}

func (e *Eventbrite) Name() string { return string(domain.SourceEventbrite) }

func (e *Eventbrite) Configured() bool { return e.cfg.APIKey != "" }

// FetchEvents queries the Eventbrite location search near the given point.
func (e *Eventbrite) FetchEvents(ctx context.Context, q domain.GeoQuery) ([]domain.Event, error) {
	if !e.Configured() {
		return nil, nil
	}

	params := url.Values{}
	params.Set("location.latitude", fmt.Sprintf("%f", q.Latitude))
	params.Set("location.longitude", fmt.Sprintf("%f", q.Longitude))
	params.Set("location.within", fmt.Sprintf("%dmi", q.RadiusMiles))
	params.Set("expand", "venue")
	params.Set("sort_by", "date")

	header := http.Header{}
	header.Set("Authorization", "Bearer "+e.cfg.APIKey)

	var resp eventbriteResponse
	if err := e.client.getJSON(ctx, e.cfg.BaseURL+"/events/search/?"+params.Encode(), header, &resp); err != nil {
		return nil, fmt.Errorf("eventbrite: %w", err)
	}

	events := make([]domain.Event, 0, len(resp.Events))
	for _, raw := range resp.Events {
		event, ok := e.normalize(raw)
		if !ok {
			e.logger.Warn("skipping unmappable event", "event_id", raw.ID)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (e *Eventbrite) normalize(raw eventbriteEvent) (domain.Event, bool) {
	if raw.Start.UTC == "" {
		return domain.Event{}, false
	}
	start, err := time.Parse(time.RFC3339, raw.Start.UTC)
	if err != nil {
		return domain.Event{}, false
	}
	utc := start.UTC()

	title := raw.Name.Text
	if title == "" {
		title = "Untitled Event"
	}
	description := raw.Description.Text
	if description == "" {
		description = raw.Summary
	}
	if description == "" {
		description = "No description available"
	}

	display := domain.TimeTBA
	if raw.Start.Local != "" {
		if local, err := time.ParseInLocation(localTimeLayout, raw.Start.Local, time.UTC); err == nil {
			display = local.Format("3:04 PM")
		}
	}

	venueName := raw.Venue.Name
	if venueName == "" {
		venueName = "Venue TBA"
	}

	status := domain.TicketComingSoon
	if raw.Status == "live" {
		status = domain.TicketAvailable
	}

	event := domain.Event{
		ID:             "eb_" + raw.ID,
		Title:          title,
		Description:    description,
		Category:       mapEventbriteCategory(raw.Category.Name),
		Date:           utc.Format(domain.DateLayout),
		Time:           display,
		UTCDateTime:    &utc,
		Location:       venueName,
		Address:        raw.Venue.Address.Address1,
		City:           raw.Venue.Address.City,
		State:          raw.Venue.Address.Region,
		ZipCode:        raw.Venue.Address.PostalCode,
		Latitude:       coord(raw.Venue.Latitude),
		Longitude:      coord(raw.Venue.Longitude),
		ImageURL:       raw.Logo.URL,
		TicketURL:      raw.URL,
		TicketProvider: "Eventbrite",
		TicketStatus:   status,
		Source:         domain.SourceEventbrite,
	}

	if raw.End.UTC != "" {
		if end, err := time.Parse(time.RFC3339, raw.End.UTC); err == nil {
			endUTC := end.UTC()
			event.EndDate = &endUTC
		}
	}
	if raw.IsFree {
		free := "0"
		event.Price = &free
	}

	return event, true
}

func mapEventbriteCategory(name string) domain.Category {
	lower := strings.ToLower(name)
	for _, group := range eventbriteKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.category
			}
		}
	}
	return domain.CategoryEntertainment
}

package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/user/event-aggregator/internal/domain"
)

const ticketmasterBaseURL = "https://app.ticketmaster.com/discovery/v2"

// ticketmasterCategories maps Discovery API segment and genre names onto
// the app's closed category set.
var ticketmasterCategories = map[string]domain.Category{
	"Music":          domain.CategoryEntertainment,
	"Sports":         domain.CategorySports,
	"Arts & Theatre": domain.CategoryArts,
	"Film":           domain.CategoryArts,
	"Dance":          domain.CategoryArts,
	"Literary":       domain.CategoryArts,
	"Museum":         domain.CategoryArts,
	"Miscellaneous":  domain.CategoryCommunity,
	"Family":         domain.CategoryCommunity,
	"Educational":    domain.CategoryCommunity,
	"Health":         domain.CategoryCommunity,
	"Holiday":        domain.CategoryCommunity,
	"Religious":      domain.CategoryCommunity,
	"Shopping":       domain.CategoryCommunity,
	"Comedy":         domain.CategoryEntertainment,
	"Festival":       domain.CategoryEntertainment,
	"Tour":           domain.CategoryEntertainment,
	"Government":     domain.CategoryGovernment,
}

type ticketmasterResponse struct {
	Embedded struct {
		Events []ticketmasterEvent `json:"events"`
	} `json:"_embedded"`
}

type ticketmasterEvent struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Info       string `json:"info"`
	PleaseNote string `json:"pleaseNote"`
	URL        string `json:"url"`
	Images     []struct {
		URL    string `json:"url"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"images"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
			DateTime  string `json:"dateTime"`
		} `json:"start"`
		Status struct {
			Code string `json:"code"`
		} `json:"status"`
	} `json:"dates"`
	Classifications []struct {
		Segment struct {
			Name string `json:"name"`
		} `json:"segment"`
		Genre struct {
			Name string `json:"name"`
		} `json:"genre"`
	} `json:"classifications"`
	PriceRanges []struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"priceRanges"`
	Embedded struct {
		Venues []struct {
			Name string `json:"name"`
			City struct {
				Name string `json:"name"`
			} `json:"city"`
			State struct {
				StateCode string `json:"stateCode"`
			} `json:"state"`
			Address struct {
				Line1 string `json:"line1"`
			} `json:"address"`
			PostalCode string `json:"postalCode"`
			Location   struct {
				Latitude  *flexFloat `json:"latitude"`
				Longitude *flexFloat `json:"longitude"`
			} `json:"location"`
		} `json:"venues"`
	} `json:"_embedded"`
}

// TicketmasterConfig configures the Ticketmaster Discovery API adapter.
type TicketmasterConfig struct {
	APIKey    string
	BaseURL   string // defaults to the public Discovery API
	Timeout   time.Duration
	RateLimit float64
}

// Ticketmaster adapts the Ticketmaster Discovery API to the normalized
// event model.
type Ticketmaster struct {
	cfg    TicketmasterConfig
	client *apiClient
	logger *slog.Logger
	now    func() time.Time
}

// NewTicketmaster creates a Ticketmaster adapter.
func NewTicketmaster(cfg TicketmasterConfig, logger *slog.Logger) *Ticketmaster {
	if cfg.BaseURL == "" {
		cfg.BaseURL = ticketmasterBaseURL
	}
	return &Ticketmaster{
		cfg:    cfg,
		client: newAPIClient(cfg.Timeout, cfg.RateLimit),
		logger: logger.With("component", "ticketmaster_provider"),
		now:    time.Now,
	}
}

func (t *Ticketmaster) Name() string { return string(domain.SourceTicketmaster) }

func (t *Ticketmaster) Configured() bool { return t.cfg.APIKey != "" }

// FetchEvents queries the Discovery API near the given location. The
// request carries a date floor of today so most past events are excluded
// server-side.
func (t *Ticketmaster) FetchEvents(ctx context.Context, q domain.GeoQuery) ([]domain.Event, error) {
	if !t.Configured() {
		return nil, nil
	}

	params := url.Values{}
	params.Set("apikey", t.cfg.APIKey)
	params.Set("latlong", fmt.Sprintf("%f,%f", q.Latitude, q.Longitude))
	params.Set("radius", fmt.Sprintf("%d", q.RadiusMiles))
	params.Set("unit", "miles")
	params.Set("size", "20")
	params.Set("sort", "date,asc")
	params.Set("startDateTime", t.now().UTC().Format(domain.DateLayout)+"T00:00:00Z")
	params.Set("embed", "venues")

	var resp ticketmasterResponse
	if err := t.client.getJSON(ctx, t.cfg.BaseURL+"/events.json?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("ticketmaster: %w", err)
	}

	events := make([]domain.Event, 0, len(resp.Embedded.Events))
	for _, raw := range resp.Embedded.Events {
		event, ok := t.normalize(raw)
		if !ok {
			t.logger.Warn("skipping unmappable event", "event_id", raw.ID)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (t *Ticketmaster) normalize(raw ticketmasterEvent) (domain.Event, bool) {
	if raw.Name == "" {
		return domain.Event{}, false
	}

	start := raw.Dates.Start
	var date string
	var utcDateTime *time.Time
	switch {
	case start.DateTime != "":
		ts, err := time.Parse(time.RFC3339, start.DateTime)
		if err != nil {
			return domain.Event{}, false
		}
		utc := ts.UTC()
		utcDateTime = &utc
		date = utc.Format(domain.DateLayout)
	case start.LocalDate != "":
		date = start.LocalDate
	default:
		// An event the source never dated cannot be ranked or filtered.
		return domain.Event{}, false
	}

	display := "7:00 PM"
	if start.LocalTime != "" {
		if lt, err := time.Parse("15:04:05", start.LocalTime); err == nil {
			display = lt.Format("3:04 PM")
		}
	}

	description := raw.Info
	if description == "" {
		description = raw.PleaseNote
	}
	if description == "" {
		description = "No description available"
	}

	var segment, genre string
	if len(raw.Classifications) > 0 {
		segment = raw.Classifications[0].Segment.Name
		genre = raw.Classifications[0].Genre.Name
	}

	event := domain.Event{
		ID:             "tm_" + raw.ID,
		Title:          raw.Name,
		Description:    description,
		Category:       mapCategory(ticketmasterCategories, segment, genre),
		Date:           date,
		Time:           display,
		UTCDateTime:    utcDateTime,
		Location:       "Venue TBA",
		ImageURL:       bestTicketmasterImage(raw),
		TicketURL:      raw.URL,
		TicketProvider: "Ticketmaster",
		TicketStatus:   ticketmasterStatus(raw.Dates.Status.Code),
		Source:         domain.SourceTicketmaster,
	}

	if len(raw.PriceRanges) > 0 {
		event.Price = decimalString(raw.PriceRanges[0].Min)
		event.MaxPrice = decimalString(raw.PriceRanges[0].Max)
	}

	if len(raw.Embedded.Venues) > 0 {
		venue := raw.Embedded.Venues[0]
		if venue.Name != "" {
			event.Location = venue.Name
		}
		event.Address = venue.Address.Line1
		event.City = venue.City.Name
		event.State = venue.State.StateCode
		event.ZipCode = venue.PostalCode
		event.Latitude = coord(venue.Location.Latitude)
		event.Longitude = coord(venue.Location.Longitude)
	}

	return event, true
}

// bestTicketmasterImage prefers the largest image by pixel area when
// dimensions are known, falling back to the first image.
func bestTicketmasterImage(raw ticketmasterEvent) string {
	best := ""
	bestArea := 0
	for _, img := range raw.Images {
		if img.Width > 0 && img.Height > 0 && img.Width*img.Height > bestArea {
			best = img.URL
			bestArea = img.Width * img.Height
		}
	}
	if best == "" && len(raw.Images) > 0 {
		best = raw.Images[0].URL
	}
	return best
}

func ticketmasterStatus(code string) domain.TicketStatus {
	if code == "offsale" {
		return domain.TicketSoldOut
	}
	return domain.TicketAvailable
}

// mapCategory resolves the first name present in the lookup table,
// defaulting to entertainment for unknown source taxonomy.
func mapCategory(table map[string]domain.Category, names ...string) domain.Category {
	for _, name := range names {
		if c, ok := table[name]; ok {
			return c
		}
	}
	return domain.CategoryEntertainment
}

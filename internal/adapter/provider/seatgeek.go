package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/user/event-aggregator/internal/domain"
)

const seatgeekBaseURL = "https://api.seatgeek.com/2"

// seatgeekCategories maps SeatGeek taxonomy types onto the app's closed
// category set. Types not listed here fall through to a performer-based
// sports check, then to entertainment.
var seatgeekCategories = map[string]domain.Category{
	"concert":                   domain.CategoryEntertainment,
	"comedy":                    domain.CategoryEntertainment,
	"festival":                  domain.CategoryEntertainment,
	"theater":                   domain.CategoryArts,
	"classical":                 domain.CategoryArts,
	"literary_arts":             domain.CategoryArts,
	"dance_performance_tour":    domain.CategoryArts,
	"broadway_tickets_national": domain.CategoryArts,
	"family":                    domain.CategoryCommunity,
	"nba":                       domain.CategorySports,
	"nfl":                       domain.CategorySports,
	"mlb":                       domain.CategorySports,
	"nhl":                       domain.CategorySports,
	"mls":                       domain.CategorySports,
	"ncaa_basketball":           domain.CategorySports,
	"ncaa_football":             domain.CategorySports,
	"minor_league_baseball":     domain.CategorySports,
	"pga":                       domain.CategorySports,
	"tennis":                    domain.CategorySports,
	"auto_racing":               domain.CategorySports,
	"wrestling":                 domain.CategorySports,
	"mma":                       domain.CategorySports,
	"boxing":                    domain.CategorySports,
}

type seatgeekResponse struct {
	Events []seatgeekEvent `json:"events"`
}

type seatgeekEvent struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	ShortTitle    string `json:"short_title"`
	URL           string `json:"url"`
	Type          string `json:"type"`
	Description   string `json:"description"`
	DatetimeLocal string `json:"datetime_local"`
	DatetimeUTC   string `json:"datetime_utc"`
	EndUTC        string `json:"enddatetime_utc"`
	AnnounceDate  string `json:"announce_date"`
	Venue         struct {
		Name       string `json:"name"`
		Address    string `json:"address"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postal_code"`
		URL        string `json:"url"`
		Location   struct {
			Lat *flexFloat `json:"lat"`
			Lon *flexFloat `json:"lon"`
		} `json:"location"`
	} `json:"venue"`
	Performers []struct {
		Type    string `json:"type"`
		Image   string `json:"image"`
		Primary bool   `json:"primary"`
	} `json:"performers"`
	Stats struct {
		LowestPrice  *float64 `json:"lowest_price"`
		HighestPrice *float64 `json:"highest_price"`
	} `json:"stats"`
}

// SeatGeekConfig configures the SeatGeek Platform API adapter.
type SeatGeekConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	Timeout      time.Duration
	RateLimit    float64
}

// SeatGeek adapts the SeatGeek Platform API to the normalized event model.
type SeatGeek struct {
	cfg    SeatGeekConfig
	client *apiClient
	logger *slog.Logger
}

// NewSeatGeek creates a SeatGeek adapter.
func NewSeatGeek(cfg SeatGeekConfig, logger *slog.Logger) *SeatGeek {
	if cfg.BaseURL == "" {
		cfg.BaseURL = seatgeekBaseURL
	}
	return &SeatGeek{
		cfg:    cfg,
		client: newAPIClient(cfg.Timeout, cfg.RateLimit),
		logger: logger.With("component", "seatgeek_provider"),
	}
}

func (s *SeatGeek) Name() string { return string(domain.SourceSeatGeek) }

func (s *SeatGeek) Configured() bool {
	return s.cfg.ClientID != "" && s.cfg.ClientSecret != ""
}

// FetchEvents queries the SeatGeek events endpoint near the given
// location. SeatGeek has no server-side date floor; the temporal filter
// downstream removes elapsed events.
func (s *SeatGeek) FetchEvents(ctx context.Context, q domain.GeoQuery) ([]domain.Event, error) {
	if !s.Configured() {
		return nil, nil
	}

	params := url.Values{}
	params.Set("client_id", s.cfg.ClientID)
	params.Set("client_secret", s.cfg.ClientSecret)
	params.Set("lat", fmt.Sprintf("%f", q.Latitude))
	params.Set("lon", fmt.Sprintf("%f", q.Longitude))
	params.Set("range", fmt.Sprintf("%dmi", q.RadiusMiles))
	params.Set("per_page", "50")
	params.Set("page", "1")

	var resp seatgeekResponse
	if err := s.client.getJSON(ctx, s.cfg.BaseURL+"/events?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("seatgeek: %w", err)
	}

	events := make([]domain.Event, 0, len(resp.Events))
	for _, raw := range resp.Events {
		event, ok := s.normalize(raw)
		if !ok {
			s.logger.Warn("skipping unmappable event", "event_id", raw.ID)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (s *SeatGeek) normalize(raw seatgeekEvent) (domain.Event, bool) {
	if raw.Title == "" {
		return domain.Event{}, false
	}

	var date string
	var utcDateTime *time.Time
	if raw.DatetimeUTC != "" {
		if ts, err := time.ParseInLocation(localTimeLayout, raw.DatetimeUTC, time.UTC); err == nil {
			utcDateTime = &ts
			date = ts.Format(domain.DateLayout)
		}
	}
	if date == "" && raw.DatetimeLocal != "" {
		if ts, err := time.ParseInLocation(localTimeLayout, raw.DatetimeLocal, time.UTC); err == nil {
			date = ts.Format(domain.DateLayout)
		}
	}
	if date == "" {
		return domain.Event{}, false
	}

	display := domain.TimeTBA
	if raw.DatetimeLocal != "" {
		if ts, err := time.ParseInLocation(localTimeLayout, raw.DatetimeLocal, time.UTC); err == nil {
			display = ts.Format("3:04 PM")
		}
	}

	venueName := raw.Venue.Name
	if venueName == "" {
		venueName = "Venue TBA"
	}

	description := raw.Description
	if description == "" {
		description = fmt.Sprintf("%s at %s", raw.ShortTitle, venueName)
	}

	ticketURL := raw.URL
	if ticketURL == "" {
		ticketURL = raw.Venue.URL
	}
	status := domain.TicketComingSoon
	if ticketURL != "" {
		status = domain.TicketAvailable
	}

	event := domain.Event{
		ID:             fmt.Sprintf("sg_%d", raw.ID),
		Title:          raw.Title,
		Description:    description,
		Category:       s.category(raw),
		Date:           date,
		Time:           display,
		UTCDateTime:    utcDateTime,
		Location:       venueName,
		Address:        raw.Venue.Address,
		City:           raw.Venue.City,
		State:          raw.Venue.State,
		ZipCode:        raw.Venue.PostalCode,
		Latitude:       coord(raw.Venue.Location.Lat),
		Longitude:      coord(raw.Venue.Location.Lon),
		ImageURL:       bestSeatGeekImage(raw),
		TicketURL:      ticketURL,
		VenueURL:       raw.Venue.URL,
		TicketProvider: "SeatGeek",
		TicketStatus:   status,
		Source:         domain.SourceSeatGeek,
	}

	if raw.EndUTC != "" {
		if ts, err := time.ParseInLocation(localTimeLayout, raw.EndUTC, time.UTC); err == nil {
			event.EndDate = &ts
		}
	}
	if raw.AnnounceDate != "" {
		if ts, err := time.ParseInLocation(localTimeLayout, raw.AnnounceDate, time.UTC); err == nil {
			event.TicketSaleDate = &ts
		}
	}
	if raw.Stats.LowestPrice != nil {
		event.Price = decimalString(*raw.Stats.LowestPrice)
	}
	if raw.Stats.HighestPrice != nil {
		event.MaxPrice = decimalString(*raw.Stats.HighestPrice)
	}

	return event, true
}

func (s *SeatGeek) category(raw seatgeekEvent) domain.Category {
	if c, ok := seatgeekCategories[raw.Type]; ok {
		return c
	}
	for _, p := range raw.Performers {
		if p.Type == "team" || p.Type == "athlete" {
			return domain.CategorySports
		}
	}
	return domain.CategoryEntertainment
}

// bestSeatGeekImage prefers the primary performer's image, then the first
// performer that has one.
func bestSeatGeekImage(raw seatgeekEvent) string {
	for _, p := range raw.Performers {
		if p.Primary && p.Image != "" {
			return p.Image
		}
	}
	for _, p := range raw.Performers {
		if p.Image != "" {
			return p.Image
		}
	}
	return ""
}

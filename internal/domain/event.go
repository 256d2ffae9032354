package domain

import "time"

// Category is the closed set of event categories the app understands.
// Raw provider taxonomy never leaks past the adapter boundary.
type Category string

const (
	CategoryEntertainment Category = "entertainment"
	CategoryGovernment    Category = "government"
	CategorySports        Category = "sports"
	CategoryArts          Category = "arts"
	CategoryCommunity     Category = "community"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryEntertainment,
	CategoryGovernment,
	CategorySports,
	CategoryArts,
	CategoryCommunity,
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryEntertainment, CategoryGovernment, CategorySports, CategoryArts, CategoryCommunity:
		return true
	}
	return false
}

// TicketStatus describes ticket availability for an event.
type TicketStatus string

const (
	TicketAvailable  TicketStatus = "available"
	TicketSoldOut    TicketStatus = "sold_out"
	TicketComingSoon TicketStatus = "coming_soon"
)

// Source identifies which adapter produced an event. It is used for
// duplicate scoring and tie-breaking, never for identity.
type Source string

const (
	SourceTicketmaster Source = "ticketmaster"
	SourceSeatGeek     Source = "seatgeek"
	SourceEventbrite   Source = "eventbrite"
	SourceLocal        Source = "local"
)

// DateLayout is the calendar-date wire format used throughout the feed.
const DateLayout = "2006-01-02"

// TimeTBA is the sentinel display time for events without a known start time.
const TimeTBA = "TBA"

// Event is the provider-agnostic event record flowing through the
// aggregation pipeline. Instances are built fresh per request and never
// mutated after the adapter boundary.
type Event struct {
	// ID is source-prefixed (tm_, sg_, eb_, loc_) so values from different
	// providers cannot collide. Dedup relies on content, not on IDs.
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`

	Location  string   `json:"location"`
	Address   string   `json:"address"`
	City      string   `json:"city,omitempty"`
	State     string   `json:"state,omitempty"`
	ZipCode   string   `json:"zipCode,omitempty"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	// Date is the calendar date in DateLayout, empty when the source never
	// reported one. Time is a localized display string ("7:05 PM" or "TBA").
	Date        string     `json:"date"`
	Time        string     `json:"time,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	UTCDateTime *time.Time `json:"utcDateTime,omitempty"`

	// Price and MaxPrice are decimal strings. nil means unknown, which is
	// distinct from "0" (free).
	Price    *string `json:"price"`
	MaxPrice *string `json:"maxPrice"`

	ImageURL  string `json:"imageUrl,omitempty"`
	TicketURL string `json:"ticketUrl,omitempty"`
	VenueURL  string `json:"venueUrl,omitempty"`

	TicketProvider string       `json:"ticketProvider"`
	TicketStatus   TicketStatus `json:"ticketStatus"`
	TicketSaleDate *time.Time   `json:"ticketSaleDate,omitempty"`

	AttendeeCount int  `json:"attendeeCount,omitempty"`
	IsHot         bool `json:"isHot,omitempty"`
	IsTrending    bool `json:"isTrending,omitempty"`

	Source Source `json:"source"`
}

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/user/event-aggregator/internal/adapter/repository/postgres"
	"github.com/user/event-aggregator/internal/domain"
	"github.com/user/event-aggregator/internal/pkg/config"
	"github.com/user/event-aggregator/internal/pkg/logger"

	_ "github.com/lib/pq" // postgres driver
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	category TEXT NOT NULL,
	location TEXT NOT NULL,
	address TEXT NOT NULL,
	city TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	zip_code TEXT NOT NULL DEFAULT '',
	latitude DECIMAL,
	longitude DECIMAL,
	date DATE NOT NULL,
	end_date TIMESTAMPTZ,
	utc_datetime TIMESTAMPTZ,
	ticket_sale_date TIMESTAMPTZ,
	event_time TEXT,
	price DECIMAL(10,2),
	max_price DECIMAL(10,2),
	image_url TEXT,
	ticket_url TEXT,
	venue_url TEXT,
	ticket_provider TEXT NOT NULL DEFAULT '',
	ticket_status TEXT NOT NULL DEFAULT 'available',
	attendee_count INTEGER NOT NULL DEFAULT 0,
	is_hot BOOLEAN NOT NULL DEFAULT FALSE,
	is_trending BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_events_date ON events (date);
CREATE INDEX IF NOT EXISTS idx_events_category ON events (category);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	store := postgres.NewEventRepository(db, log)
	for _, event := range sampleEvents(time.Now().UTC()) {
		created, err := store.CreateEvent(ctx, event)
		if err != nil {
			log.Error("failed to seed event", "title", event.Title, "error", err)
			os.Exit(1)
		}
		log.Info("seeded event", "id", created.ID, "title", created.Title)
	}

	log.Info("seeding complete")
}

// sampleEvents builds the deterministic local dataset. Dates are relative
// to now so the seed always produces upcoming events; nothing here is
// randomized.
func sampleEvents(now time.Time) []domain.Event {
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(domain.DateLayout)
	}
	// Next Saturday and Sunday, for weekend filtering.
	toSaturday := (int(time.Saturday) - int(now.Weekday()) + 7) % 7
	if toSaturday == 0 {
		toSaturday = 7
	}

	price := func(v string) *string { return &v }
	coord := func(v float64) *float64 { return &v }

	return []domain.Event{
		{
			Title:         "Arlington Music Festival",
			Description:   "Experience the best of Texas music with legendary performers and emerging artists. Food trucks and craft beer available.",
			Category:      domain.CategoryEntertainment,
			Location:      "River Legacy Park",
			Address:       "703 NW Green Oaks Blvd, Arlington, TX 76006",
			City:          "Arlington",
			State:         "TX",
			Latitude:      coord(32.7081),
			Longitude:     coord(-97.1531),
			Date:          day(2),
			Time:          "8:00 PM",
			ImageURL:      "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=800&h=400",
			Price:         price("0"),
			TicketStatus:  domain.TicketAvailable,
			AttendeeCount: 1247,
			IsHot:         true,
			IsTrending:    true,
		},
		{
			Title:         "Morning Yoga in the Park",
			Description:   "Free community yoga session in beautiful park setting. Bring your own mat.",
			Category:      domain.CategoryCommunity,
			Location:      "River Legacy Park",
			Address:       "703 NW Green Oaks Blvd, Arlington, TX 76006",
			City:          "Arlington",
			State:         "TX",
			Latitude:      coord(32.7081),
			Longitude:     coord(-97.1531),
			Date:          day(1),
			Time:          "8:00 AM",
			ImageURL:      "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=800&h=400",
			Price:         price("0"),
			TicketStatus:  domain.TicketAvailable,
			AttendeeCount: 60,
		},
		{
			Title:         "City Council Meeting",
			Description:   "Monthly city council meeting discussing budget allocations, park improvements, and traffic safety measures.",
			Category:      domain.CategoryGovernment,
			Location:      "Arlington City Hall",
			Address:       "101 W Abram St, Arlington, TX 76010",
			City:          "Arlington",
			State:         "TX",
			Latitude:      coord(32.7357),
			Longitude:     coord(-97.1081),
			Date:          day(3),
			Time:          "7:00 PM",
			Price:         price("0"),
			TicketStatus:  domain.TicketAvailable,
			AttendeeCount: 23,
		},
		{
			Title:         "Saturday Farmers Market",
			Description:   "Fresh produce, artisanal goods, and local crafts every Saturday morning.",
			Category:      domain.CategoryCommunity,
			Location:      "Downtown Arlington",
			Address:       "200 E Main St, Arlington, TX 76010",
			City:          "Arlington",
			State:         "TX",
			Latitude:      coord(32.7357),
			Longitude:     coord(-97.1081),
			Date:          day(toSaturday),
			Time:          "9:00 AM",
			ImageURL:      "https://images.unsplash.com/photo-1533900298318-6b8da08a523e?w=800&h=400",
			Price:         price("0"),
			TicketStatus:  domain.TicketAvailable,
			AttendeeCount: 450,
		},
		{
			Title:         "Sunday Jazz Brunch",
			Description:   "Elegant brunch with live jazz music in downtown Arlington.",
			Category:      domain.CategoryEntertainment,
			Location:      "Arlington Music Hall",
			Address:       "224 N Center St, Arlington, TX 76011",
			City:          "Arlington",
			State:         "TX",
			Latitude:      coord(32.7357),
			Longitude:     coord(-97.1081),
			Date:          day(toSaturday + 1),
			Time:          "11:00 AM",
			ImageURL:      "https://images.unsplash.com/photo-1514933651103-005eec06c04b?w=800&h=400",
			Price:         price("65"),
			TicketStatus:  domain.TicketAvailable,
			AttendeeCount: 120,
		},
		{
			Title:         "Premium Wine Tasting",
			Description:   "Exclusive wine tasting event with sommelier-led sessions featuring rare vintages.",
			Category:      domain.CategoryEntertainment,
			Location:      "The Mansion Restaurant",
			Address:       "2821 Turtle Creek Blvd, Arlington, TX 76019",
			City:          "Arlington",
			State:         "TX",
			Latitude:      coord(32.7767),
			Longitude:     coord(-97.1081),
			Date:          day(4),
			Time:          "6:00 PM",
			ImageURL:      "https://images.unsplash.com/photo-1510812431401-41d2bd2722f3?w=800&h=400",
			Price:         price("185"),
			TicketStatus:  domain.TicketAvailable,
			AttendeeCount: 40,
		},
		{
			Title:         "Texas Rangers vs Angels",
			Description:   "MLB regular season game featuring the Texas Rangers taking on the Los Angeles Angels. Pre-game festivities start at 6 PM.",
			Category:      domain.CategorySports,
			Location:      "Globe Life Field",
			Address:       "734 Stadium Dr, Arlington, TX 76011",
			City:          "Arlington",
			State:         "TX",
			Latitude:      coord(32.7472),
			Longitude:     coord(-97.0833),
			Date:          day(3),
			Time:          "7:05 PM",
			ImageURL:      "https://images.unsplash.com/photo-1461896836934-ffe607ba8211?w=800&h=400",
			Price:         price("125"),
			MaxPrice:      price("450"),
			TicketStatus:  domain.TicketAvailable,
			AttendeeCount: 15429,
		},
		{
			Title:         "Contemporary Art Exhibition",
			Description:   "Opening night of a new contemporary art exhibition featuring regional painters and sculptors.",
			Category:      domain.CategoryArts,
			Location:      "Arlington Museum of Art",
			Address:       "201 W Main St, Arlington, TX 76010",
			City:          "Arlington",
			State:         "TX",
			Latitude:      coord(32.7340),
			Longitude:     coord(-97.1100),
			Date:          day(5),
			Time:          "6:30 PM",
			ImageURL:      "https://images.unsplash.com/photo-1531243269054-5ebf6f34081e?w=800&h=400",
			Price:         price("15"),
			TicketStatus:  domain.TicketAvailable,
			AttendeeCount: 85,
		},
	}
}

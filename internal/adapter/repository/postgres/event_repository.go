package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/user/event-aggregator/internal/domain"
	"github.com/user/event-aggregator/internal/pkg/geo"
)

const eventColumns = `id, title, description, category, location, address, city, state, zip_code,
	latitude, longitude, date, end_date, utc_datetime, ticket_sale_date, event_time,
	price, max_price, image_url, ticket_url, venue_url, ticket_provider, ticket_status,
	attendee_count, is_hot, is_trending`

// EventRepository implements domain.EventStore on PostgreSQL. It holds the
// seeded local dataset that is always merged into the combined feed.
type EventRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewEventRepository creates a new PostgreSQL event repository.
func NewEventRepository(db *sql.DB, logger *slog.Logger) *EventRepository {
	return &EventRepository{db: db, logger: logger.With("component", "postgres_repository")}
}

// QueryEvents returns local events matching the filters. Events dated
// before today (UTC) are always excluded; radius and weekend filters run
// in-memory because coordinates are a flat column, not a spatial index.
func (r *EventRepository) QueryEvents(ctx context.Context, filters domain.EventFilters) ([]domain.Event, error) {
	conditions := []string{"date >= CURRENT_DATE"}
	var args []any

	if len(filters.Categories) > 0 {
		categories := make([]string, 0, len(filters.Categories))
		for _, c := range filters.Categories {
			if c.IsValid() {
				categories = append(categories, string(c))
			}
		}
		if len(categories) > 0 {
			args = append(args, pq.Array(categories))
			conditions = append(conditions, fmt.Sprintf("category = ANY($%d)", len(args)))
		}
	}
	if filters.FreeOnly {
		conditions = append(conditions, "price = 0")
	} else {
		if filters.MinPrice != nil {
			args = append(args, *filters.MinPrice)
			conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
		}
		if filters.MaxPrice != nil {
			args = append(args, *filters.MaxPrice)
			conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
		}
	}
	if filters.TodayOnly {
		conditions = append(conditions, "date = CURRENT_DATE")
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY is_trending DESC, is_hot DESC, date ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if filters.WeekendOnly {
		events = keepWeekend(events)
	}
	if filters.UserLatitude != nil && filters.UserLongitude != nil && filters.RadiusMiles > 0 {
		events = keepWithinRadius(events, *filters.UserLatitude, *filters.UserLongitude, filters.RadiusMiles)
	}
	return events, nil
}

// CreateEvent persists a local event, assigning a loc_-prefixed ID when
// the caller did not provide one.
func (r *EventRepository) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if event.ID == "" {
		event.ID = "loc_" + uuid.NewString()
	}
	if event.Source == "" {
		event.Source = domain.SourceLocal
	}

	query := `INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, string(event.Category),
		event.Location, event.Address, event.City, event.State, event.ZipCode,
		nullFloat(event.Latitude), nullFloat(event.Longitude),
		event.Date, event.EndDate, event.UTCDateTime, event.TicketSaleDate, event.Time,
		nullDecimal(event.Price), nullDecimal(event.MaxPrice),
		nullString(event.ImageURL), nullString(event.TicketURL), nullString(event.VenueURL),
		event.TicketProvider, string(event.TicketStatus),
		event.AttendeeCount, event.IsHot, event.IsTrending,
	)
	if err != nil {
		return domain.Event{}, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

// CountByCategory returns upcoming-event counts per category plus an "all"
// total.
func (r *EventRepository) CountByCategory(ctx context.Context) (map[string]int, error) {
	counts := map[string]int{"all": 0}
	for _, c := range domain.Categories {
		counts[string(c)] = 0
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM events WHERE date >= CURRENT_DATE GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		if _, ok := counts[category]; ok {
			counts[category] += count
		}
		counts["all"] += count
	}
	return counts, rows.Err()
}

func scanEvent(rows *sql.Rows) (domain.Event, error) {
	var (
		e                        domain.Event
		category, status         string
		lat, lon                 sql.NullFloat64
		date                     time.Time
		endDate, utcDT, saleDate sql.NullTime
		eventTime                sql.NullString
		price, maxPrice          sql.NullString
		imageURL, ticketURL      sql.NullString
		venueURL, provider       sql.NullString
	)

	err := rows.Scan(
		&e.ID, &e.Title, &e.Description, &category, &e.Location, &e.Address,
		&e.City, &e.State, &e.ZipCode, &lat, &lon, &date, &endDate, &utcDT,
		&saleDate, &eventTime, &price, &maxPrice, &imageURL, &ticketURL,
		&venueURL, &provider, &status, &e.AttendeeCount, &e.IsHot, &e.IsTrending,
	)
	if err != nil {
		return domain.Event{}, err
	}

	e.Category = domain.Category(category)
	e.TicketStatus = domain.TicketStatus(status)
	e.Source = domain.SourceLocal
	e.Date = date.Format(domain.DateLayout)
	if lat.Valid {
		e.Latitude = &lat.Float64
	}
	if lon.Valid {
		e.Longitude = &lon.Float64
	}
	if endDate.Valid {
		e.EndDate = &endDate.Time
	}
	if utcDT.Valid {
		e.UTCDateTime = &utcDT.Time
	}
	if saleDate.Valid {
		e.TicketSaleDate = &saleDate.Time
	}
	if eventTime.Valid {
		e.Time = eventTime.String
	}
	if price.Valid {
		e.Price = &price.String
	}
	if maxPrice.Valid {
		e.MaxPrice = &maxPrice.String
	}
	e.ImageURL = imageURL.String
	e.TicketURL = ticketURL.String
	e.VenueURL = venueURL.String
	if provider.Valid {
		e.TicketProvider = provider.String
	}
	return e, nil
}

// keepWithinRadius filters by haversine distance. Events without
// coordinates are kept; they cannot be placed, so they are not excluded.
func keepWithinRadius(events []domain.Event, lat, lon float64, radiusMiles int) []domain.Event {
	kept := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if e.Latitude == nil || e.Longitude == nil {
			kept = append(kept, e)
			continue
		}
		if geo.DistanceMiles(lat, lon, *e.Latitude, *e.Longitude) <= float64(radiusMiles) {
			kept = append(kept, e)
		}
	}
	return kept
}

func keepWeekend(events []domain.Event) []domain.Event {
	kept := make([]domain.Event, 0, len(events))
	for _, e := range events {
		d, err := time.ParseInLocation(domain.DateLayout, e.Date, time.UTC)
		if err != nil {
			continue
		}
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			kept = append(kept, e)
		}
	}
	return kept
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullDecimal(v *string) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(*v, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

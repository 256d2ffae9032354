package domain

// GeoQuery is the location window handed to external provider adapters.
type GeoQuery struct {
	Latitude    float64
	Longitude   float64
	RadiusMiles int
}

// FeedQuery carries every filter the combined-events endpoint accepts.
// Latitude and Longitude are optional; when either is missing, external
// providers are skipped and only the local store is consulted.
type FeedQuery struct {
	UserLatitude  *float64
	UserLongitude *float64
	RadiusMiles   int
	Categories    []Category
	Providers     []string
	MinPrice      *float64
	MaxPrice      *float64
}

// HasLocation reports whether the query carries a full coordinate pair.
func (q FeedQuery) HasLocation() bool {
	return q.UserLatitude != nil && q.UserLongitude != nil
}

// EventFilters is the filter set understood by the local event store.
type EventFilters struct {
	Categories    []Category
	MinPrice      *float64
	MaxPrice      *float64
	FreeOnly      bool
	TodayOnly     bool
	WeekendOnly   bool
	UserLatitude  *float64
	UserLongitude *float64
	RadiusMiles   int
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/user/event-aggregator/internal/adapter/metrics"
	"github.com/user/event-aggregator/internal/domain"
)

// AggregateEventsUseCase builds the combined event feed: it fans out to
// every configured provider, merges the results with the local store,
// filters out elapsed events, collapses duplicates and returns a
// date-sorted, capped feed.
type AggregateEventsUseCase struct {
	store     domain.EventStore
	providers []domain.EventProvider
	cache     domain.FeedCache // optional
	logger    *slog.Logger
	metrics   *metrics.AggregatorMetrics // optional

	providerTimeout time.Duration
	defaultRadius   int
	maxResults      int

	now func() time.Time
}

// NewAggregateEventsUseCase creates a new AggregateEventsUseCase. cache and
// m may be nil.
func NewAggregateEventsUseCase(
	store domain.EventStore,
	providers []domain.EventProvider,
	cache domain.FeedCache,
	logger *slog.Logger,
	m *metrics.AggregatorMetrics,
	providerTimeout time.Duration,
	defaultRadius int,
	maxResults int,
) *AggregateEventsUseCase {
	return &AggregateEventsUseCase{
		store:           store,
		providers:       providers,
		cache:           cache,
		logger:          logger,
		metrics:         m,
		providerTimeout: providerTimeout,
		defaultRadius:   defaultRadius,
		maxResults:      maxResults,
		now:             time.Now,
	}
}

// providerResult carries one provider's outcome back from the fan-out.
type providerResult struct {
	provider string
	events   []domain.Event
	err      error
}

// Aggregate executes the full pipeline for one feed query. Provider
// failures degrade to empty contributions; only a local store failure is
// surfaced to the caller.
func (uc *AggregateEventsUseCase) Aggregate(ctx context.Context, q domain.FeedQuery) ([]domain.Event, error) {
	start := uc.now()
	if q.RadiusMiles <= 0 {
		q.RadiusMiles = uc.defaultRadius
	}

	cacheKey := feedCacheKey(q)
	if uc.cache != nil {
		cached, ok, err := uc.cache.GetFeed(ctx, cacheKey)
		if err != nil {
			uc.logger.Warn("feed cache lookup failed", "error", err)
		} else if ok {
			if uc.metrics != nil {
				uc.metrics.FeedCacheHits.Inc()
			}
			return cached, nil
		}
		if uc.metrics != nil {
			uc.metrics.FeedCacheMisses.Inc()
		}
	}

	// The local store is always consulted; its failure is the one error
	// path the client sees.
	local, err := uc.store.QueryEvents(ctx, domain.EventFilters{
		Categories:    q.Categories,
		MinPrice:      q.MinPrice,
		MaxPrice:      q.MaxPrice,
		UserLatitude:  q.UserLatitude,
		UserLongitude: q.UserLongitude,
		RadiusMiles:   q.RadiusMiles,
	})
	if err != nil {
		return nil, fmt.Errorf("query local events: %w", err)
	}

	all := applyFeedFilters(local, q)

	if q.HasLocation() {
		geo := domain.GeoQuery{
			Latitude:    *q.UserLatitude,
			Longitude:   *q.UserLongitude,
			RadiusMiles: q.RadiusMiles,
		}
		for _, events := range uc.fetchAll(ctx, geo) {
			all = append(all, applyFeedFilters(events, q)...)
		}
	}

	all = FilterCurrent(all, uc.now())
	all = Deduplicate(all)
	SortByDate(all)
	if len(all) > uc.maxResults {
		all = all[:uc.maxResults]
	}

	if uc.cache != nil {
		if err := uc.cache.SetFeed(ctx, cacheKey, all); err != nil {
			uc.logger.Warn("feed cache store failed", "error", err)
		}
	}
	if uc.metrics != nil {
		uc.metrics.AggregationDuration.Observe(uc.now().Sub(start).Seconds())
		uc.metrics.FeedEventsReturned.Observe(float64(len(all)))
	}

	return all, nil
}

// fetchAll queries every configured provider concurrently. Each fetch gets
// its own timeout, and a failure in one never blocks or fails the others.
// Results come back in provider registration order so the merged feed is
// deterministic regardless of which fetch finishes first.
func (uc *AggregateEventsUseCase) fetchAll(ctx context.Context, geo domain.GeoQuery) [][]domain.Event {
	results := make([]providerResult, len(uc.providers))
	var wg sync.WaitGroup

	for i, p := range uc.providers {
		if !p.Configured() {
			if uc.metrics != nil {
				uc.metrics.ProviderRequests.WithLabelValues(p.Name(), "skipped").Inc()
			}
			uc.logger.Debug("provider not configured, skipping", "provider", p.Name())
			continue
		}

		wg.Add(1)
		go func(i int, p domain.EventProvider) {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, uc.providerTimeout)
			defer cancel()

			events, err := p.FetchEvents(fetchCtx, geo)
			results[i] = providerResult{provider: p.Name(), events: events, err: err}
		}(i, p)
	}
	wg.Wait()

	ordered := make([][]domain.Event, 0, len(results))
	for _, res := range results {
		if res.provider == "" {
			continue // provider was skipped
		}
		if res.err != nil {
			uc.logger.Error("provider fetch failed", "provider", res.provider, "error", res.err)
			if uc.metrics != nil {
				uc.metrics.ProviderRequests.WithLabelValues(res.provider, "error").Inc()
			}
			continue
		}
		if uc.metrics != nil {
			uc.metrics.ProviderRequests.WithLabelValues(res.provider, "ok").Inc()
			uc.metrics.ProviderEvents.WithLabelValues(res.provider).Add(float64(len(res.events)))
		}
		ordered = append(ordered, res.events)
	}
	return ordered
}

// applyFeedFilters applies the category and ticket-provider filters. They
// are applied identically to every source's result set before merging.
func applyFeedFilters(events []domain.Event, q domain.FeedQuery) []domain.Event {
	if len(q.Categories) == 0 && len(q.Providers) == 0 {
		return events
	}

	categories := make(map[domain.Category]bool, len(q.Categories))
	for _, c := range q.Categories {
		categories[c] = true
	}
	providers := make(map[string]bool, len(q.Providers))
	for _, p := range q.Providers {
		providers[p] = true
	}

	kept := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if len(categories) > 0 && !categories[e.Category] {
			continue
		}
		if len(providers) > 0 && !providers[e.TicketProvider] {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// feedCacheKey fingerprints a query. Filter sets are sorted so that
// equivalent queries share a cache entry regardless of parameter order.
func feedCacheKey(q domain.FeedQuery) string {
	categories := make([]string, len(q.Categories))
	for i, c := range q.Categories {
		categories[i] = string(c)
	}
	sort.Strings(categories)
	providers := append([]string(nil), q.Providers...)
	sort.Strings(providers)

	var b strings.Builder
	b.WriteString("feed:")
	if q.HasLocation() {
		fmt.Fprintf(&b, "%.4f,%.4f,%d", *q.UserLatitude, *q.UserLongitude, q.RadiusMiles)
	}
	fmt.Fprintf(&b, "|c=%s|p=%s", strings.Join(categories, ","), strings.Join(providers, ","))
	if q.MinPrice != nil {
		fmt.Fprintf(&b, "|min=%.2f", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		fmt.Fprintf(&b, "|max=%.2f", *q.MaxPrice)
	}
	return b.String()
}

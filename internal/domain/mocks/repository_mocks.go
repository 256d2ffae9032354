package mocks

import (
	"context"
	"sync"

	"github.com/user/event-aggregator/internal/domain"
)

// MockEventStore is a mock implementation of domain.EventStore for testing.
type MockEventStore struct {
	mu            sync.Mutex
	QueryResult   []domain.Event
	QueryErr      error
	QueryFilters  []domain.EventFilters
	CreatedEvents []domain.Event
	CreateErr     error
	Counts        map[string]int
	CountErr      error
}

func (m *MockEventStore) QueryEvents(ctx context.Context, filters domain.EventFilters) ([]domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryFilters = append(m.QueryFilters, filters)
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	return m.QueryResult, nil
}

func (m *MockEventStore) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return domain.Event{}, m.CreateErr
	}
	m.CreatedEvents = append(m.CreatedEvents, event)
	return event, nil
}

func (m *MockEventStore) CountByCategory(ctx context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountErr != nil {
		return nil, m.CountErr
	}
	return m.Counts, nil
}

// MockProvider is a mock implementation of domain.EventProvider.
type MockProvider struct {
	mu           sync.Mutex
	ProviderName string
	IsConfigured bool
	Events       []domain.Event
	Err          error
	Delay        func(ctx context.Context) // optional hook to simulate latency
	FetchCalls   int
}

func (m *MockProvider) Name() string { return m.ProviderName }

func (m *MockProvider) Configured() bool { return m.IsConfigured }

func (m *MockProvider) FetchEvents(ctx context.Context, q domain.GeoQuery) ([]domain.Event, error) {
	m.mu.Lock()
	m.FetchCalls++
	m.mu.Unlock()
	if m.Delay != nil {
		m.Delay(ctx)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Events, nil
}

// MockFeedCache is a mock implementation of domain.FeedCache.
type MockFeedCache struct {
	mu       sync.Mutex
	Feeds    map[string][]domain.Event
	GetErr   error
	SetErr   error
	GetCalls int
	SetCalls int
}

func (m *MockFeedCache) GetFeed(ctx context.Context, key string) ([]domain.Event, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	feed, ok := m.Feeds[key]
	return feed, ok, nil
}

func (m *MockFeedCache) SetFeed(ctx context.Context, key string, events []domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.Feeds == nil {
		m.Feeds = make(map[string][]domain.Event)
	}
	m.Feeds[key] = events
	return nil
}

package domain

import "context"

// EventProvider is implemented by every external ticketing adapter.
// FetchEvents is best-effort: transport failures, non-2xx responses and
// malformed payloads surface as an error so the orchestrator can log a
// structured failure reason, but a provider without configured credentials
// simply returns an empty result.
type EventProvider interface {
	// Name returns the adapter tag (e.g. "ticketmaster").
	Name() string

	// Configured reports whether the provider has the credentials it needs.
	// Unconfigured providers are skipped silently.
	Configured() bool

	// FetchEvents returns normalized events near the given location.
	FetchEvents(ctx context.Context, q GeoQuery) ([]Event, error)
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/user/event-aggregator/internal/adapter/api/handler"
	"github.com/user/event-aggregator/internal/domain"
	"github.com/user/event-aggregator/internal/usecase"
)

// NewRouter creates and configures the HTTP router for the event feed service.
func NewRouter(
	logger *slog.Logger,
	aggregateUseCase *usecase.AggregateEventsUseCase,
	store domain.EventStore,
) http.Handler {
	mux := http.NewServeMux()

	eventsHandler := handler.NewEventsHandler(aggregateUseCase, store, logger)

	mux.HandleFunc("GET /api/events/combined", eventsHandler.Combined)
	mux.HandleFunc("GET /api/categories/counts", eventsHandler.CategoryCounts)

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}

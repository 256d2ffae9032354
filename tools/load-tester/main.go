package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Hits the combined feed endpoint with a fixed set of filter permutations
// to exercise the cache and the provider fan-out under load.
func main() {
	baseURL := flag.String("url", "http://localhost:8080/api/events/combined", "Combined feed URL")
	concurrency := flag.Int("c", 10, "Number of concurrent workers")
	duration := flag.Duration("d", 30*time.Second, "Duration of the load test")
	rps := flag.Int("rps", 200, "Requests per second limit")
	flag.Parse()

	queries := []string{
		"userLatitude=32.7357&userLongitude=-97.1081&radius=50",
		"userLatitude=32.7357&userLongitude=-97.1081&radius=25&categories=sports,entertainment",
		"userLatitude=32.7357&userLongitude=-97.1081&ticketProviders=Ticketmaster",
		"categories=community&minPrice=0&maxPrice=50",
		"",
	}

	log.Printf("Starting load test on %s", *baseURL)
	log.Printf("Concurrency: %d, Duration: %s, RPS: %d", *concurrency, *duration, *rps)

	var wg sync.WaitGroup
	var successCount, errorCount atomic.Int64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(*rps), 50)

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			client := &http.Client{Timeout: 15 * time.Second}

			for n := 0; ; n++ {
				select {
				case <-ctx.Done():
					return
				default:
					if err := limiter.Wait(ctx); err != nil {
						return
					}

					url := *baseURL
					if q := queries[(workerID+n)%len(queries)]; q != "" {
						url += "?" + q
					}

					req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
					if err != nil {
						continue
					}

					resp, err := client.Do(req)
					if err != nil {
						errorCount.Add(1)
						continue
					}
					io.Copy(io.Discard, resp.Body)
					resp.Body.Close()

					if resp.StatusCode == http.StatusOK {
						successCount.Add(1)
					} else {
						errorCount.Add(1)
					}
				}
			}
		}(i)
	}

	wg.Wait()

	total := successCount.Load() + errorCount.Load()
	fmt.Printf("Requests: %d, OK: %d, Errors: %d\n", total, successCount.Load(), errorCount.Load())
}

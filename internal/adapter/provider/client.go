package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// apiClient is the HTTP plumbing shared by all provider adapters: a
// bounded-timeout client behind a per-provider rate limiter that protects
// third-party API quotas.
type apiClient struct {
	http    *http.Client
	limiter *rate.Limiter
}

func newAPIClient(timeout time.Duration, rps float64) *apiClient {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	if rps <= 0 {
		rps = 5
	}
	return &apiClient{
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// getJSON performs a rate-limited GET and decodes a 2xx JSON body into v.
// Non-2xx responses return an error carrying the status and a truncated
// body excerpt.
func (c *apiClient) getJSON(ctx context.Context, url string, header http.Header, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for k, vals := range header {
		for _, val := range vals {
			req.Header.Add(k, val)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// localTimeLayout is the zone-less timestamp format SeatGeek and
// Eventbrite use for local times.
const localTimeLayout = "2006-01-02T15:04:05"

// flexFloat unmarshals from either a JSON number or a decimal string.
// Provider APIs are inconsistent about how they encode coordinates, and
// some ship junk values like "N/A". Anything unparseable is treated as
// absent; one record's bad coordinate must never abort the batch decode.
type flexFloat struct {
	value float64
	valid bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.value = v
	f.valid = true
	return nil
}

// coord converts an optional flexFloat field to the model's *float64 form.
func coord(f *flexFloat) *float64 {
	if f == nil || !f.valid {
		return nil
	}
	v := f.value
	return &v
}

// decimalString formats a price as the decimal-string encoding used on the
// wire. Unknown prices stay nil; they are never coerced to "0".
func decimalString(v float64) *string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return &s
}

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ygoas29/fieldway/core/travel"
	"github.com/ygoas29/fieldway/infra/logger"
)

// Config holds the routing API connection settings.
type Config struct {
	URL            string `json:"url"`
	APIKey         string `json:"api_key"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// routeResponse is the JSON shape of the routing API answer.
type routeResponse struct {
	DistanceKm               float64 `json:"distance_km"`
	DurationMinutes          float64 `json:"duration_minutes"`
	DurationInTrafficMinutes float64 `json:"duration_in_traffic_minutes"`
}

// HTTPProvider queries an external routing API over HTTP. Any failure is
// wrapped in a travel.ProviderError so the resolver can fall back to local
// estimation.
type HTTPProvider struct {
	client *http.Client
	apiURL string
	apiKey string
	log    logger.Logger
}

// NewHTTPProvider creates a provider for the given routing endpoint.
func NewHTTPProvider(cfg Config) *HTTPProvider {
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 10
	}
	return &HTTPProvider{
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		apiURL: cfg.URL,
		apiKey: cfg.APIKey,
		log:    logger.New("travel-provider"),
	}
}

// Route fetches the route between two location codes for a departure time.
func (p *HTTPProvider) Route(ctx context.Context, from, to string, departure time.Time) (travel.Route, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	if !departure.IsZero() {
		q.Set("departure", departure.Format(time.RFC3339))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL+"?"+q.Encode(), nil)
	if err != nil {
		return travel.Route{}, &travel.ProviderError{Op: "build request", Err: err}
	}
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return travel.Route{}, &travel.ProviderError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return travel.Route{}, &travel.ProviderError{
			Op:  "route lookup",
			Err: fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return travel.Route{}, &travel.ProviderError{Op: "read response", Err: err}
	}
	var rr routeResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return travel.Route{}, &travel.ProviderError{Op: "decode response", Err: err}
	}

	route := travel.Route{
		DistanceKm:        rr.DistanceKm,
		Duration:          time.Duration(rr.DurationMinutes * float64(time.Minute)),
		DurationInTraffic: time.Duration(rr.DurationInTrafficMinutes * float64(time.Minute)),
	}
	if route.DurationInTraffic < route.Duration {
		route.DurationInTraffic = route.Duration
	}
	p.log.Debugf("route %s->%s: %.1f km, %s", from, to, route.DistanceKm, route.Duration)
	return route, nil
}

// Package geo resolves delivery coordinates into human-readable
// addresses via the OpenStreetMap Nominatim API.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/appetiteclub/apt"
)

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org"
	defaultTimeout = 5 * time.Second
)

// ReverseGeocoder turns a coordinate pair into a display address.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) string
}

// Nominatim is the production ReverseGeocoder. Lookups are best-effort:
// any failure falls back to the raw coordinates so checkout never blocks
// on the geocoder.
type Nominatim struct {
	baseURL string
	client  *http.Client
	logger  apt.Logger
}

func NewNominatim(logger apt.Logger) *Nominatim {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Nominatim{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

// NewNominatimWithBaseURL points the client at a non-default endpoint.
// Used by tests and self-hosted Nominatim deployments.
func NewNominatimWithBaseURL(baseURL string, logger apt.Logger) *Nominatim {
	n := NewNominatim(logger)
	n.baseURL = baseURL
	return n
}

func (n *Nominatim) ReverseGeocode(ctx context.Context, lat, lng float64) string {
	address, err := n.lookup(ctx, lat, lng)
	if err != nil {
		n.logger.Debug("reverse geocode failed, using raw coordinates", "lat", lat, "lng", lng, "error", err)
		return FallbackLabel(lat, lng)
	}
	return address
}

func (n *Nominatim) lookup(ctx context.Context, lat, lng float64) (string, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("lat", fmt.Sprintf("%f", lat))
	query.Set("lon", fmt.Sprintf("%f", lng))

	endpoint := fmt.Sprintf("%s/reverse?%s", n.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build reverse geocode request: %w", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var payload struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}
	if payload.DisplayName == "" {
		return "", fmt.Errorf("reverse geocode response has no display name")
	}

	return payload.DisplayName, nil
}

// FallbackLabel is the address shown when no lookup result is available.
func FallbackLabel(lat, lng float64) string {
	return fmt.Sprintf("%.6f, %.6f", lat, lng)
}

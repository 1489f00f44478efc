// Package geocode resolves coordinates to country names through a
// pluggable reverse geocoder with a bounded, grid-keyed cache in front.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Geocoder resolves a coordinate to a country name. An empty string with
// a nil error means the lookup succeeded but resolved nothing.
type Geocoder interface {
	LookupCountry(ctx context.Context, lat, lon float64) (string, error)
}

// DefaultLookupTimeout bounds a single reverse lookup. A timed-out
// lookup is never fatal; the affected day simply lacks a country.
const DefaultLookupTimeout = 5 * time.Second

// HTTPGeocoder talks to a Nominatim-compatible reverse geocoding
// endpoint.
type HTTPGeocoder struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGeocoder returns a geocoder against the given base URL, e.g.
// "https://nominatim.openstreetmap.org".
func NewHTTPGeocoder(baseURL string, timeout time.Duration) *HTTPGeocoder {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	return &HTTPGeocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type reverseResponse struct {
	Address struct {
		Country string `json:"country"`
	} `json:"address"`
}

// LookupCountry performs a single bounded reverse lookup.
func (g *HTTPGeocoder) LookupCountry(ctx context.Context, lat, lon float64) (string, error) {
	endpoint := fmt.Sprintf("%s/reverse?format=jsonv2&zoom=3&lat=%s&lon=%s",
		g.baseURL,
		url.QueryEscape(fmt.Sprintf("%.6f", lat)),
		url.QueryEscape(fmt.Sprintf("%.6f", lon)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse lookup failed with status %d", resp.StatusCode)
	}

	var parsed reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode reverse lookup response: %w", err)
	}

	return parsed.Address.Country, nil
}

// CachedGeocoder wraps a Geocoder with a grid-keyed cache so nearby
// coordinates reuse a single lookup. Lookup failures are not cached.
type CachedGeocoder struct {
	inner Geocoder
	cache *Cache
}

// NewCachedGeocoder wraps inner with the given cache.
func NewCachedGeocoder(inner Geocoder, cache *Cache) *CachedGeocoder {
	return &CachedGeocoder{inner: inner, cache: cache}
}

func (c *CachedGeocoder) LookupCountry(ctx context.Context, lat, lon float64) (string, error) {
	if country, ok := c.cache.Get(lat, lon); ok {
		return country, nil
	}

	country, err := c.inner.LookupCountry(ctx, lat, lon)
	if err != nil {
		return "", err
	}

	c.cache.Put(lat, lon, country)
	return country, nil
}

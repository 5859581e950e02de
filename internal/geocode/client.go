// Package geocode resolves street addresses to coordinates for the listing
// forms. Google's Geocoding API is used when an API key is configured;
// otherwise requests go to a Nominatim instance.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/config"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// ErrNotFound means the provider had no match for the address.
var ErrNotFound = errors.New("address not found")

// Result is one resolved address.
type Result struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formattedAddress"`
	Source           string  `json:"source"`
}

// Geocoder resolves a free-text address.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Result, error)
}

// NewGeocoder selects the provider from configuration.
func NewGeocoder(cfg *config.Config, logger *zap.Logger) (Geocoder, error) {
	if cfg.GoogleMapsAPIKey != "" {
		client, err := maps.NewClient(maps.WithAPIKey(cfg.GoogleMapsAPIKey))
		if err != nil {
			return nil, fmt.Errorf("google maps client: %w", err)
		}
		logger.Info("Geocoding via Google Maps")
		return &googleGeocoder{client: client, timeout: cfg.GeocodeTimeout}, nil
	}
	logger.Info("Geocoding via Nominatim", zap.String("url", cfg.NominatimURL))
	return NewNominatim(cfg.NominatimURL, &http.Client{Timeout: cfg.GeocodeTimeout}), nil
}

type googleGeocoder struct {
	client  *maps.Client
	timeout time.Duration
}

func (g *googleGeocoder) Geocode(ctx context.Context, address string) (*Result, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("google geocode: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	best := results[0]
	return &Result{
		Latitude:         best.Geometry.Location.Lat,
		Longitude:        best.Geometry.Location.Lng,
		FormattedAddress: best.FormattedAddress,
		Source:           "google",
	}, nil
}

// Nominatim queries the OpenStreetMap search API.
type Nominatim struct {
	baseURL string
	client  *http.Client
}

// NewNominatim creates a Nominatim geocoder against baseURL.
func NewNominatim(baseURL string, client *http.Client) *Nominatim {
	return &Nominatim{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (n *Nominatim) Geocode(ctx context.Context, address string) (*Result, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "pittmetrorealty-api/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("nominatim decode: %w", err)
	}
	if len(places) == 0 {
		return nil, ErrNotFound
	}
	lat, latErr := strconv.ParseFloat(places[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(places[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil, fmt.Errorf("nominatim: malformed coordinates %q,%q", places[0].Lat, places[0].Lon)
	}
	return &Result{
		Latitude:         lat,
		Longitude:        lon,
		FormattedAddress: places[0].DisplayName,
		Source:           "nominatim",
	}, nil
}

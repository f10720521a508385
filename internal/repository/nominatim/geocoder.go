// Package nominatim geocodes free-text queries through the OpenStreetMap
// Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/voyago/voyago-backend/internal/domain"
)

const userAgent = "voyago-backend/1.0"

type Geocoder struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Geocoder {
	return &Geocoder{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
	} `json:"address"`
}

func (g *Geocoder) Geocode(ctx context.Context, query string) (*domain.ResolvedDestination, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim search: status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("nominatim search: decode: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("nominatim search %q: no results", query)
	}

	result := results[0]
	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim search %q: bad latitude %q", query, result.Lat)
	}
	lon, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim search %q: bad longitude %q", query, result.Lon)
	}

	city := result.Address.City
	if city == "" {
		city = result.Address.Town
	}
	if city == "" {
		city = result.Address.Village
	}
	if city == "" {
		city = query
	}
	name := result.DisplayName
	if name == "" {
		name = query
	}

	return &domain.ResolvedDestination{
		Name:        name,
		City:        city,
		Coordinates: domain.Coordinates{Latitude: lat, Longitude: lon},
	}, nil
}

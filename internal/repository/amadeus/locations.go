package amadeus

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/voyago/voyago-backend/internal/domain"
)

type location struct {
	Name    string `json:"name"`
	GeoCode *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"geoCode"`
	Address struct {
		CityName string `json:"cityName"`
	} `json:"address"`
}

func (l location) toDestination(fallback string) *domain.ResolvedDestination {
	dest := &domain.ResolvedDestination{Name: l.Name, City: l.Address.CityName}
	if dest.Name == "" {
		dest.Name = fallback
	}
	if dest.City == "" {
		dest.City = dest.Name
	}
	if l.GeoCode != nil {
		dest.Coordinates = domain.Coordinates{Latitude: l.GeoCode.Latitude, Longitude: l.GeoCode.Longitude}
	}
	return dest
}

// AirportByCode fetches the airport record by its reference-data location id
// ("A" + IATA code).
func (c *Client) AirportByCode(ctx context.Context, iataCode string) (*domain.ResolvedDestination, error) {
	code := strings.ToUpper(iataCode)

	var loc location
	if err := c.get(ctx, "/v1/reference-data/locations/A"+code, nil, &loc); err != nil {
		return nil, err
	}
	dest := loc.toDestination(code)
	if dest.Coordinates.IsZero() {
		return nil, fmt.Errorf("amadeus airport lookup %s: no geocode", code)
	}
	return dest, nil
}

func (c *Client) CityByKeyword(ctx context.Context, keyword string) (*domain.ResolvedDestination, error) {
	params := url.Values{}
	params.Set("keyword", keyword)

	var cities []location
	if err := c.get(ctx, "/v1/reference-data/locations/cities", params, &cities); err != nil {
		return nil, err
	}
	if len(cities) == 0 {
		return nil, fmt.Errorf("amadeus city search %q: no results", keyword)
	}
	dest := cities[0].toDestination(keyword)
	dest.City = dest.Name
	if dest.Coordinates.IsZero() {
		return nil, fmt.Errorf("amadeus city search %q: no geocode", keyword)
	}
	return dest, nil
}

func (c *Client) LocationByKeyword(ctx context.Context, keyword string) (*domain.ResolvedDestination, error) {
	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("subType", "AIRPORT,CITY")

	var locations []location
	if err := c.get(ctx, "/v1/reference-data/locations", params, &locations); err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("amadeus location search %q: no results", keyword)
	}
	dest := locations[0].toDestination(keyword)
	if dest.Coordinates.IsZero() {
		return nil, fmt.Errorf("amadeus location search %q: no geocode", keyword)
	}
	return dest, nil
}

func (c *Client) AirportsByGeocode(ctx context.Context, coords domain.Coordinates, limit int) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("latitude", formatCoord(coords.Latitude))
	params.Set("longitude", formatCoord(coords.Longitude))

	var airports []map[string]any
	if err := c.get(ctx, "/v1/reference-data/locations/airports", params, &airports); err != nil {
		return nil, err
	}
	return capAny(airports, limit), nil
}

func (c *Client) DirectDestinations(ctx context.Context, origin string, limit int) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("departureAirportCode", origin)

	var routes []map[string]any
	if err := c.get(ctx, "/v1/airport/direct-destinations", params, &routes); err != nil {
		return nil, err
	}
	return capAny(routes, limit), nil
}

func (c *Client) TripPurpose(ctx context.Context, origin, destination, departureDate, returnDate string) (map[string]any, error) {
	params := url.Values{}
	params.Set("originLocationCode", origin)
	params.Set("destinationLocationCode", destination)
	params.Set("departureDate", departureDate)
	params.Set("returnDate", returnDate)

	var prediction map[string]any
	if err := c.get(ctx, "/v1/travel/predictions/trip-purpose", params, &prediction); err != nil {
		return nil, err
	}
	return prediction, nil
}

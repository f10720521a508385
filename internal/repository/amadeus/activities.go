package amadeus

import (
	"context"
	"net/url"
	"strconv"

	"github.com/voyago/voyago-backend/internal/domain"
)

type activity struct {
	ID               string    `json:"id"`
	Name             textValue `json:"name"`
	ShortDescription textValue `json:"shortDescription"`
	Description      textValue `json:"description"`
	Price            *struct {
		Amount       string `json:"amount"`
		CurrencyCode string `json:"currencyCode"`
	} `json:"price"`
	Rating   string    `json:"rating"`
	Duration textValue `json:"duration"`
	Category textValue `json:"category"`
	GeoCode  *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"geoCode"`
	BookingLink string `json:"bookingLink"`
}

func (a activity) toDomain() domain.Activity {
	description := a.ShortDescription.String()
	if description == "" {
		description = a.Description.String()
	}
	out := domain.Activity{
		ID:          a.ID,
		Name:        a.Name.String(),
		Description: description,
		Rating:      a.Rating,
		Duration:    a.Duration.String(),
		Category:    a.Category.String(),
		BookingLink: a.BookingLink,
	}
	if a.Price != nil && a.Price.Amount != "" {
		out.Price = &domain.Price{Total: a.Price.Amount, Currency: a.Price.CurrencyCode}
	}
	if a.GeoCode != nil {
		out.Location = &domain.Coordinates{Latitude: a.GeoCode.Latitude, Longitude: a.GeoCode.Longitude}
	}
	return out
}

func (c *Client) ActivitiesByLocation(ctx context.Context, coords domain.Coordinates, radiusKm, limit int) ([]domain.Activity, error) {
	params := url.Values{}
	params.Set("latitude", formatCoord(coords.Latitude))
	params.Set("longitude", formatCoord(coords.Longitude))
	params.Set("radius", strconv.Itoa(radiusKm))

	var activities []activity
	if err := c.get(ctx, "/v1/shopping/activities", params, &activities); err != nil {
		return nil, err
	}
	return capActivities(activities, limit), nil
}

func (c *Client) ActivitiesBySquare(ctx context.Context, north, west, south, east float64, limit int) ([]domain.Activity, error) {
	params := url.Values{}
	params.Set("north", formatCoord(north))
	params.Set("west", formatCoord(west))
	params.Set("south", formatCoord(south))
	params.Set("east", formatCoord(east))

	var activities []activity
	if err := c.get(ctx, "/v1/shopping/activities/by-square", params, &activities); err != nil {
		return nil, err
	}
	return capActivities(activities, limit), nil
}

func capActivities(activities []activity, limit int) []domain.Activity {
	out := make([]domain.Activity, 0, len(activities))
	for _, a := range activities {
		out = append(out, a.toDomain())
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

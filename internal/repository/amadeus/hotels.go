package amadeus

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/repository/ports"
)

func (c *Client) HotelIDsByCity(ctx context.Context, cityCode string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("cityCode", cityCode)

	var hotels []struct {
		HotelID string `json:"hotelId"`
	}
	if err := c.get(ctx, "/v1/reference-data/locations/hotels/by-city", params, &hotels); err != nil {
		return nil, err
	}

	ids := make([]string, 0, limit)
	for _, h := range hotels {
		if h.HotelID == "" {
			continue
		}
		ids = append(ids, h.HotelID)
		if len(ids) == limit {
			break
		}
	}
	return ids, nil
}

type hotelOffer struct {
	Hotel struct {
		HotelID string    `json:"hotelId"`
		Name    textValue `json:"name"`
		Rating  string    `json:"rating"`
		Address struct {
			Lines    []string `json:"lines"`
			CityName string   `json:"cityName"`
		} `json:"address"`
		Amenities []string `json:"amenities"`
	} `json:"hotel"`
	Offers []struct {
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
		Room struct {
			Description textValue `json:"description"`
		} `json:"room"`
		CheckInDate  string    `json:"checkInDate"`
		CheckOutDate string    `json:"checkOutDate"`
		Category     textValue `json:"category"`
		Policies     struct {
			Cancellations []struct {
				Description textValue `json:"description"`
			} `json:"cancellations"`
		} `json:"policies"`
	} `json:"offers"`
}

func (c *Client) HotelOffers(ctx context.Context, hotelIDs []string, stay ports.HotelStay) ([]domain.HotelOffer, error) {
	params := url.Values{}
	params.Set("hotelIds", strings.Join(hotelIDs, ","))
	params.Set("adults", strconv.Itoa(stay.Adults))
	params.Set("checkInDate", stay.CheckInDate)
	params.Set("checkOutDate", stay.CheckOutDate)

	var offers []hotelOffer
	if err := c.get(ctx, "/v3/shopping/hotel-offers", params, &offers); err != nil {
		return nil, err
	}

	out := make([]domain.HotelOffer, 0, len(offers))
	for _, offer := range offers {
		hotel := domain.HotelOffer{
			HotelID:   offer.Hotel.HotelID,
			Name:      offer.Hotel.Name.String(),
			Rating:    offer.Hotel.Rating,
			Address:   strings.Join(offer.Hotel.Address.Lines, ", "),
			Amenities: offer.Hotel.Amenities,
		}
		if len(offer.Offers) > 0 {
			best := offer.Offers[0]
			hotel.Price = domain.Price{Total: best.Price.Total, Currency: best.Price.Currency}
			hotel.Description = best.Room.Description.String()
			hotel.CheckInDate = best.CheckInDate
			hotel.CheckOutDate = best.CheckOutDate
			hotel.Category = best.Category.String()
			if len(best.Policies.Cancellations) > 0 {
				hotel.Cancellation = best.Policies.Cancellations[0].Description.String()
			}
		}
		out = append(out, hotel)
	}
	return out, nil
}

func (c *Client) HotelSentiments(ctx context.Context, hotelIDs []string) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("hotelIds", strings.Join(hotelIDs, ","))

	var sentiments []map[string]any
	if err := c.get(ctx, "/v2/e-reputation/hotel-sentiments", params, &sentiments); err != nil {
		return nil, err
	}
	return sentiments, nil
}

func (c *Client) HotelsByGeocode(ctx context.Context, coords domain.Coordinates, limit int) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("latitude", formatCoord(coords.Latitude))
	params.Set("longitude", formatCoord(coords.Longitude))

	var hotels []map[string]any
	if err := c.get(ctx, "/v1/reference-data/locations/hotels/by-geocode", params, &hotels); err != nil {
		return nil, err
	}
	return capAny(hotels, limit), nil
}

func (c *Client) HotelsByKeyword(ctx context.Context, keyword string, limit int) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("subType", "HOTEL_GDS")

	var hotels []map[string]any
	if err := c.get(ctx, "/v1/reference-data/locations/hotel", params, &hotels); err != nil {
		return nil, err
	}
	return capAny(hotels, limit), nil
}

func capAny(items []map[string]any, limit int) []map[string]any {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

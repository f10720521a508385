package amadeus

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/repository/ports"
)

type flightOffer struct {
	ID    string `json:"id"`
	Price struct {
		Total    string `json:"total"`
		Currency string `json:"currency"`
	} `json:"price"`
	Itineraries []struct {
		Duration string          `json:"duration"`
		Segments []flightSegment `json:"segments"`
	} `json:"itineraries"`
}

type flightSegment struct {
	Departure   flightEndpoint `json:"departure"`
	Arrival     flightEndpoint `json:"arrival"`
	CarrierCode string         `json:"carrierCode"`
	Number      string         `json:"number"`
	Duration    string         `json:"duration"`
}

type flightEndpoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"`
}

func (e flightEndpoint) toDomain() domain.FlightEndpoint {
	return domain.FlightEndpoint{IATACode: e.IATACode, Terminal: e.Terminal, At: e.At}
}

func (c *Client) SearchFlightOffers(ctx context.Context, q ports.FlightQuery) ([]domain.FlightOffer, error) {
	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartureDate)
	params.Set("adults", strconv.Itoa(q.Adults))
	if q.ReturnDate != "" {
		params.Set("returnDate", q.ReturnDate)
	}
	if q.Max > 0 {
		params.Set("max", strconv.Itoa(q.Max))
	}

	var offers []flightOffer
	if err := c.get(ctx, "/v2/shopping/flight-offers", params, &offers); err != nil {
		return nil, err
	}

	out := make([]domain.FlightOffer, 0, len(offers))
	for _, offer := range offers {
		if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
			continue
		}
		itinerary := offer.Itineraries[0]
		first := itinerary.Segments[0]
		last := itinerary.Segments[len(itinerary.Segments)-1]

		segments := make([]domain.FlightSegment, 0, len(itinerary.Segments))
		for _, seg := range itinerary.Segments {
			segments = append(segments, domain.FlightSegment{
				Departure:   seg.Departure.toDomain(),
				Arrival:     seg.Arrival.toDomain(),
				CarrierCode: seg.CarrierCode,
				Number:      seg.Number,
				Duration:    seg.Duration,
			})
		}

		out = append(out, domain.FlightOffer{
			ID:        offer.ID,
			Price:     domain.Price{Total: offer.Price.Total, Currency: offer.Price.Currency},
			Duration:  itinerary.Duration,
			Departure: first.Departure.toDomain(),
			Arrival:   last.Arrival.toDomain(),
			Carrier:   first.CarrierCode,
			Stops:     len(itinerary.Segments) - 1,
			Segments:  segments,
		})
	}
	return out, nil
}

func (c *Client) Airlines(ctx context.Context, codes []string) ([]domain.Airline, error) {
	params := url.Values{}
	params.Set("airlineCodes", strings.Join(codes, ","))

	var airlines []struct {
		IATACode   string `json:"iataCode"`
		CommonName string `json:"commonName"`
	}
	if err := c.get(ctx, "/v1/reference-data/airlines", params, &airlines); err != nil {
		return nil, err
	}

	out := make([]domain.Airline, 0, len(airlines))
	for _, a := range airlines {
		out = append(out, domain.Airline{IATACode: a.IATACode, CommonName: a.CommonName})
	}
	return out, nil
}

func (c *Client) ItineraryPriceMetrics(ctx context.Context, origin, destination, departureDate string) (map[string]any, error) {
	params := url.Values{}
	params.Set("originIataCode", origin)
	params.Set("destinationIataCode", destination)
	params.Set("departureDate", departureDate)

	var metrics []map[string]any
	if err := c.get(ctx, "/v1/analytics/itinerary-price-metrics", params, &metrics); err != nil {
		return nil, err
	}
	if len(metrics) == 0 {
		return map[string]any{}, nil
	}
	return metrics[0], nil
}

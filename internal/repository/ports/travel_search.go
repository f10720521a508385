package ports

import (
	"context"

	"github.com/voyago/voyago-backend/internal/domain"
)

type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	Max           int
}

type FlightSearch interface {
	SearchFlightOffers(ctx context.Context, q FlightQuery) ([]domain.FlightOffer, error)
	Airlines(ctx context.Context, codes []string) ([]domain.Airline, error)
	ItineraryPriceMetrics(ctx context.Context, origin, destination, departureDate string) (map[string]any, error)
}

type HotelStay struct {
	CheckInDate  string
	CheckOutDate string
	Adults       int
}

type HotelSearch interface {
	HotelIDsByCity(ctx context.Context, cityCode string, limit int) ([]string, error)
	HotelOffers(ctx context.Context, hotelIDs []string, stay HotelStay) ([]domain.HotelOffer, error)
	HotelSentiments(ctx context.Context, hotelIDs []string) ([]map[string]any, error)
	HotelsByGeocode(ctx context.Context, coords domain.Coordinates, limit int) ([]map[string]any, error)
	HotelsByKeyword(ctx context.Context, keyword string, limit int) ([]map[string]any, error)
}

type ActivitySearch interface {
	ActivitiesByLocation(ctx context.Context, coords domain.Coordinates, radiusKm, limit int) ([]domain.Activity, error)
	ActivitiesBySquare(ctx context.Context, north, west, south, east float64, limit int) ([]domain.Activity, error)
}

// LocationDirectory exposes the aviation provider's reference-data lookups.
type LocationDirectory interface {
	AirportByCode(ctx context.Context, iataCode string) (*domain.ResolvedDestination, error)
	CityByKeyword(ctx context.Context, keyword string) (*domain.ResolvedDestination, error)
	LocationByKeyword(ctx context.Context, keyword string) (*domain.ResolvedDestination, error)
	AirportsByGeocode(ctx context.Context, coords domain.Coordinates, limit int) ([]map[string]any, error)
	DirectDestinations(ctx context.Context, origin string, limit int) ([]map[string]any, error)
	TripPurpose(ctx context.Context, origin, destination, departureDate, returnDate string) (map[string]any, error)
}

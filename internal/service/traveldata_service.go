package service

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/repository/ports"
)

const (
	maxFlightResults    = 5
	flightRequestLimit  = 10
	maxHotelIDs         = 15
	maxHotelResults     = 6
	maxSentimentHotels  = 3
	maxNearbyHotels     = 5
	maxKeywordHotels    = 5
	activityRadiusKm    = 50
	maxRadiusActivities = 8
	minActivities       = 5
	maxActivities       = 10
	maxNearbyAirports   = 3
	maxDirectRoutes     = 10
)

// TravelDataService fans out to the flight, hotel, activity and prediction
// providers and assembles whatever came back. Provider failures degrade to
// empty sections; they never fail the request.
type TravelDataService struct {
	flights    ports.FlightSearch
	hotels     ports.HotelSearch
	activities ports.ActivitySearch
	directory  ports.LocationDirectory
	geocoder   ports.Geocoder
}

func NewTravelDataService(
	flights ports.FlightSearch,
	hotels ports.HotelSearch,
	activities ports.ActivitySearch,
	directory ports.LocationDirectory,
	geocoder ports.Geocoder,
) *TravelDataService {
	return &TravelDataService{
		flights:    flights,
		hotels:     hotels,
		activities: activities,
		directory:  directory,
		geocoder:   geocoder,
	}
}

type travelData struct {
	Flights        []domain.FlightOffer
	FlightInsights domain.FlightInsights
	Hotels         []domain.HotelOffer
	HotelInsights  domain.HotelInsights
	Activities     []domain.Activity
	TravelInsights domain.TravelInsights
}

func (s *TravelDataService) Aggregate(ctx context.Context, req domain.TripRequest, dest domain.ResolvedDestination) travelData {
	var data travelData

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data.Flights, data.FlightInsights = s.collectFlights(gctx, req)
		return nil
	})
	g.Go(func() error {
		data.Hotels, data.HotelInsights = s.collectHotels(gctx, req, dest)
		return nil
	})
	g.Go(func() error {
		data.Activities = s.collectActivities(gctx, req, dest)
		return nil
	})
	g.Go(func() error {
		data.TravelInsights = s.collectTravelInsights(gctx, req, dest)
		return nil
	})
	g.Wait()

	return data
}

func (s *TravelDataService) collectFlights(ctx context.Context, req domain.TripRequest) ([]domain.FlightOffer, domain.FlightInsights) {
	var insights domain.FlightInsights

	offers, err := s.flights.SearchFlightOffers(ctx, ports.FlightQuery{
		Origin:        strings.ToUpper(req.Origin),
		Destination:   strings.ToUpper(req.Destination),
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        req.Travelers,
		Max:           flightRequestLimit,
	})
	if err != nil {
		log.Printf("flight search failed: %v", err)
		return nil, insights
	}
	if len(offers) > maxFlightResults {
		offers = offers[:maxFlightResults]
	}

	carriers := map[string]bool{}
	for _, offer := range offers {
		for _, seg := range offer.Segments {
			if seg.CarrierCode != "" {
				carriers[seg.CarrierCode] = true
			}
		}
	}
	if len(carriers) > 0 {
		codes := make([]string, 0, len(carriers))
		for code := range carriers {
			codes = append(codes, code)
		}
		airlines, err := s.flights.Airlines(ctx, codes)
		if err != nil {
			log.Printf("airline lookup failed: %v", err)
		} else {
			insights.Airlines = airlines
		}
	}

	if isIATACode(req.Origin) && isIATACode(req.Destination) {
		metrics, err := s.flights.ItineraryPriceMetrics(ctx,
			strings.ToUpper(req.Origin), strings.ToUpper(req.Destination), req.DepartureDate)
		if err != nil {
			log.Printf("price metrics failed: %v", err)
		} else {
			insights.PriceAnalysis = metrics
		}
	}

	return offers, insights
}

func (s *TravelDataService) collectHotels(ctx context.Context, req domain.TripRequest, dest domain.ResolvedDestination) ([]domain.HotelOffer, domain.HotelInsights) {
	var insights domain.HotelInsights

	checkOut := req.ReturnDate
	if checkOut == "" {
		checkOut = req.DepartureDate
	}

	var offers []domain.HotelOffer
	if isIATACode(req.Destination) {
		hotelIDs, err := s.hotels.HotelIDsByCity(ctx, strings.ToUpper(req.Destination), maxHotelIDs)
		if err != nil {
			log.Printf("hotel id lookup failed: %v", err)
		} else if len(hotelIDs) > 0 {
			offers, err = s.hotels.HotelOffers(ctx, hotelIDs, ports.HotelStay{
				CheckInDate:  req.DepartureDate,
				CheckOutDate: checkOut,
				Adults:       req.Travelers,
			})
			if err != nil {
				log.Printf("hotel offers failed: %v", err)
			}
		}
	}
	if len(offers) > maxHotelResults {
		offers = offers[:maxHotelResults]
	}

	if len(offers) > 0 {
		ids := make([]string, 0, maxSentimentHotels)
		for _, offer := range offers {
			if len(ids) == maxSentimentHotels {
				break
			}
			ids = append(ids, offer.HotelID)
		}
		sentiments, err := s.hotels.HotelSentiments(ctx, ids)
		if err != nil {
			log.Printf("hotel sentiments failed: %v", err)
		} else {
			insights.Sentiments = sentiments
		}
	}

	if !dest.Coordinates.IsZero() {
		nearby, err := s.hotels.HotelsByGeocode(ctx, dest.Coordinates, maxNearbyHotels)
		if err != nil {
			log.Printf("nearby hotel search failed: %v", err)
		} else {
			insights.NearbyHotels = nearby
		}
	}

	if keyword := hotelKeyword(req.Destination); keyword != "" {
		alternatives, err := s.hotels.HotelsByKeyword(ctx, keyword, maxKeywordHotels)
		if err != nil {
			log.Printf("keyword hotel search failed: %v", err)
		} else {
			insights.AlternativeHotels = alternatives
		}
	}

	return offers, insights
}

func (s *TravelDataService) collectActivities(ctx context.Context, req domain.TripRequest, dest domain.ResolvedDestination) []domain.Activity {
	coords := dest.Coordinates
	if coords.IsZero() {
		// Last-ditch geocode, tried exactly once per request.
		fallback, err := s.geocoder.Geocode(ctx, req.Destination+" city center")
		if err != nil || fallback.Coordinates.IsZero() {
			log.Printf("no coordinates for %q, skipping activities", req.Destination)
			return nil
		}
		coords = fallback.Coordinates
	}

	activities, err := s.activities.ActivitiesByLocation(ctx, coords, activityRadiusKm, maxRadiusActivities)
	if err != nil {
		log.Printf("activity search failed: %v", err)
	}

	if len(activities) < minActivities {
		extra, err := s.activities.ActivitiesBySquare(ctx,
			coords.Latitude+0.1, coords.Longitude-0.1,
			coords.Latitude-0.1, coords.Longitude+0.1,
			maxRadiusActivities)
		if err != nil {
			log.Printf("area activity search failed: %v", err)
		} else {
			activities = mergeActivities(activities, extra)
		}
	}

	if len(activities) > maxActivities {
		activities = activities[:maxActivities]
	}
	return activities
}

func (s *TravelDataService) collectTravelInsights(ctx context.Context, req domain.TripRequest, dest domain.ResolvedDestination) domain.TravelInsights {
	var insights domain.TravelInsights

	if !dest.Coordinates.IsZero() {
		airports, err := s.directory.AirportsByGeocode(ctx, dest.Coordinates, maxNearbyAirports)
		if err != nil {
			log.Printf("nearby airport search failed: %v", err)
		} else {
			insights.NearbyAirports = airports
		}
	}

	if isIATACode(req.Origin) {
		routes, err := s.directory.DirectDestinations(ctx, strings.ToUpper(req.Origin), maxDirectRoutes)
		if err != nil {
			log.Printf("direct destination search failed: %v", err)
		} else {
			insights.AvailableRoutes = routes
		}
	}

	if req.ReturnDate != "" && isIATACode(req.Origin) && isIATACode(req.Destination) {
		purpose, err := s.directory.TripPurpose(ctx,
			strings.ToUpper(req.Origin), strings.ToUpper(req.Destination),
			req.DepartureDate, req.ReturnDate)
		if err != nil {
			log.Printf("trip purpose prediction failed: %v", err)
		} else {
			insights.TripPurpose = purpose
		}
	}

	return insights
}

// mergeActivities appends extras that are not already present, keyed by ID.
func mergeActivities(base, extra []domain.Activity) []domain.Activity {
	seen := make(map[string]bool, len(base))
	for _, a := range base {
		seen[a.ID] = true
	}
	for _, a := range extra {
		if a.ID != "" && seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		base = append(base, a)
	}
	return base
}

func isIATACode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// hotelKeyword shortens the destination token for the keyword hotel search,
// which rejects long queries.
func hotelKeyword(destination string) string {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return ""
	}
	if len(destination) > 4 {
		destination = destination[:4]
	}
	return strings.ToUpper(destination)
}

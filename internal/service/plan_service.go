package service

import (
	"context"

	"github.com/voyago/voyago-backend/internal/domain"
)

// PlanService runs one planning request end to end: resolve the destination,
// aggregate provider data, then generate the itinerary from the activities
// that came back.
type PlanService struct {
	destinations *DestinationService
	travelData   *TravelDataService
	itineraries  *ItineraryService
}

func NewPlanService(destinations *DestinationService, travelData *TravelDataService, itineraries *ItineraryService) *PlanService {
	return &PlanService{
		destinations: destinations,
		travelData:   travelData,
		itineraries:  itineraries,
	}
}

func (s *PlanService) Plan(ctx context.Context, req domain.TripRequest) *domain.TripPlan {
	dest := s.destinations.Resolve(ctx, req.Destination)
	data := s.travelData.Aggregate(ctx, req, dest)
	itinerary := s.itineraries.Generate(ctx, req, dest, data.Activities)

	return &domain.TripPlan{
		Destination:    dest,
		Flights:        data.Flights,
		FlightInsights: data.FlightInsights,
		Hotels:         data.Hotels,
		HotelInsights:  data.HotelInsights,
		Activities:     data.Activities,
		TravelInsights: data.TravelInsights,
		Itinerary:      itinerary,
		DepartureDate:  req.DepartureDate,
		ReturnDate:     req.ReturnDate,
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/repository/ports"
)

var (
	ErrTripNotFound     = errors.New("trip not found")
	ErrMissingTripField = errors.New("title, destination, start date and end date are required")
)

type TripService struct {
	trips ports.TripRepository
	now   func() time.Time
}

func NewTripService(trips ports.TripRepository) *TripService {
	return &TripService{trips: trips, now: time.Now}
}

type SaveTripInput struct {
	Title           string                     `json:"title"`
	Destination     domain.ResolvedDestination `json:"destination"`
	StartDate       string                     `json:"start_date"`
	EndDate         string                     `json:"end_date"`
	CalendarEventID *string                    `json:"calendar_event_id,omitempty"`
	Flights         []domain.FlightOffer       `json:"flights"`
	Hotels          []domain.HotelOffer        `json:"hotels"`
	Activities      []domain.Activity          `json:"activities"`
	Itinerary       []domain.ItineraryDay      `json:"itinerary"`
}

func (s *TripService) SaveTrip(ctx context.Context, userID uuid.UUID, in SaveTripInput) (*domain.Trip, error) {
	if in.Title == "" || in.Destination.Name == "" || in.StartDate == "" || in.EndDate == "" {
		return nil, ErrMissingTripField
	}

	trip := &domain.Trip{
		UserID:          userID,
		Title:           in.Title,
		Destination:     in.Destination,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Status:          domain.TripStatusAt(s.now(), in.StartDate, in.EndDate),
		CalendarEventID: in.CalendarEventID,
		Flights:         in.Flights,
		Hotels:          in.Hotels,
		Activities:      in.Activities,
		Itinerary:       in.Itinerary,
	}
	return s.trips.Create(ctx, trip)
}

// SavePlan persists a generated plan as a trip titled after the destination.
func (s *TripService) SavePlan(ctx context.Context, userID uuid.UUID, plan *domain.TripPlan, calendarEventID *string) (*domain.Trip, error) {
	endDate := plan.ReturnDate
	if endDate == "" {
		endDate = plan.DepartureDate
	}
	return s.SaveTrip(ctx, userID, SaveTripInput{
		Title:           fmt.Sprintf("Trip to %s", DestinationDisplayName(plan.Destination)),
		Destination:     plan.Destination,
		StartDate:       plan.DepartureDate,
		EndDate:         endDate,
		CalendarEventID: calendarEventID,
		Flights:         plan.Flights,
		Hotels:          plan.Hotels,
		Activities:      plan.Activities,
		Itinerary:       plan.Itinerary,
	})
}

// List returns the user's trips with the status recomputed from today so a
// stale stored status never leaks out.
func (s *TripService) List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range trips {
		trips[i].Status = domain.TripStatusAt(now, trips[i].StartDate, trips[i].EndDate)
	}
	return trips, nil
}

func (s *TripService) Update(ctx context.Context, id, userID uuid.UUID, update ports.TripUpdate) (*domain.Trip, error) {
	// A date change invalidates the stored status, so recompute it here
	// rather than trusting the caller.
	if update.StartDate != nil || update.EndDate != nil {
		current, err := s.findTrip(ctx, id, userID)
		if err != nil {
			return nil, err
		}
		start := current.StartDate
		if update.StartDate != nil {
			start = *update.StartDate
		}
		end := current.EndDate
		if update.EndDate != nil {
			end = *update.EndDate
		}
		status := domain.TripStatusAt(s.now(), start, end)
		update.Status = &status
	}

	trip, err := s.trips.Update(ctx, id, userID, update)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	trip.Status = domain.TripStatusAt(s.now(), trip.StartDate, trip.EndDate)
	return trip, nil
}

func (s *TripService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.trips.Delete(ctx, id, userID); err != nil {
		if isNotFound(err) {
			return ErrTripNotFound
		}
		return err
	}
	return nil
}

func (s *TripService) findTrip(ctx context.Context, id, userID uuid.UUID) (*domain.Trip, error) {
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range trips {
		if trips[i].ID == id {
			return &trips[i], nil
		}
	}
	return nil, ErrTripNotFound
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

type TripStatus string

const (
	TripStatusUpcoming  TripStatus = "upcoming"
	TripStatusOngoing   TripStatus = "ongoing"
	TripStatusCompleted TripStatus = "completed"
)

// Trip is the persisted record of a saved plan. Flights, hotels, activities
// and the itinerary are stored as copies for history; they are never
// reconciled with the providers afterward.
type Trip struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	Title           string              `json:"title"`
	Destination     ResolvedDestination `json:"destination"`
	StartDate       string              `json:"start_date"`
	EndDate         string              `json:"end_date"`
	Status          TripStatus          `json:"status"`
	CalendarEventID *string             `json:"calendar_event_id,omitempty"`
	Flights         []FlightOffer       `json:"flights"`
	Hotels          []HotelOffer        `json:"hotels"`
	Activities      []Activity          `json:"activities"`
	Itinerary       []ItineraryDay      `json:"itinerary"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// TripStatusAt derives the status from the trip's date range. Stored status is
// a snapshot from creation time; readers recompute it so it never goes stale.
func TripStatusAt(now time.Time, startDate, endDate string) TripStatus {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return TripStatusUpcoming
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		end = start
	}
	// The end day counts as part of the trip.
	end = end.Add(24*time.Hour - time.Nanosecond)
	switch {
	case now.Before(start):
		return TripStatusUpcoming
	case now.After(end):
		return TripStatusCompleted
	default:
		return TripStatusOngoing
	}
}

package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/repository/ports"
)

const defaultTripDays = 3

// ItineraryService builds a day-by-day plan from the generative model, with a
// deterministic fallback when the model output is missing or malformed.
type ItineraryService struct {
	model ports.ItineraryModel
}

func NewItineraryService(model ports.ItineraryModel) *ItineraryService {
	return &ItineraryService{model: model}
}

func (s *ItineraryService) Generate(ctx context.Context, req domain.TripRequest, dest domain.ResolvedDestination, activities []domain.Activity) []domain.ItineraryDay {
	days := tripDurationDays(req.DepartureDate, req.ReturnDate)

	prompt := buildItineraryPrompt(req, dest, activities, days)
	generated, err := s.model.GenerateItinerary(ctx, prompt)
	if err != nil {
		log.Printf("itinerary generation failed: %v", err)
		return fallbackItinerary(req, dest, activities, days)
	}
	if !validItinerary(generated, req.DepartureDate, days) {
		log.Printf("itinerary output rejected: %d days generated, %d expected", len(generated), days)
		return fallbackItinerary(req, dest, activities, days)
	}
	return generated
}

// tripDurationDays counts calendar days inclusively: a trip departing on the
// 1st and returning on the 4th spans four days.
func tripDurationDays(departureDate, returnDate string) int {
	if returnDate == "" {
		return defaultTripDays
	}
	start, err := time.Parse("2006-01-02", departureDate)
	if err != nil {
		return defaultTripDays
	}
	end, err := time.Parse("2006-01-02", returnDate)
	if err != nil || end.Before(start) {
		return defaultTripDays
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func buildItineraryPrompt(req domain.TripRequest, dest domain.ResolvedDestination, activities []domain.Activity, days int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %d-day travel itinerary for a trip to %s.\n", days, dest.Name)
	fmt.Fprintf(&b, "The trip starts on %s.\n", req.DepartureDate)
	fmt.Fprintf(&b, "Travelers: %d. Budget: %s. Travel style: %s.\n", req.Travelers, req.Budget, req.TravelStyle)
	if req.Interests != "" {
		fmt.Fprintf(&b, "Traveler interests: %s.\n", req.Interests)
	}
	if req.AccommodationType != "" {
		fmt.Fprintf(&b, "Accommodation: %s.\n", req.AccommodationType)
	}
	if len(activities) > 0 {
		b.WriteString("Bookable activities at the destination:\n")
		for _, a := range activities {
			fmt.Fprintf(&b, "- %s\n", a.Name)
		}
		b.WriteString("Prefer these where they fit the style and budget.\n")
	}
	fmt.Fprintf(&b, "Return exactly %d days. Number the days starting at 1 and date them consecutively from %s in YYYY-MM-DD format.\n", days, req.DepartureDate)
	b.WriteString("Each day needs 2-4 concrete activities and a short suggestion sentence.")
	return b.String()
}

// validItinerary checks that the model produced the exact day count, 1-based
// contiguous day numbers, and gap-free dates starting at the departure date.
func validItinerary(days []domain.ItineraryDay, departureDate string, want int) bool {
	if len(days) != want {
		return false
	}
	start, err := time.Parse("2006-01-02", departureDate)
	if err != nil {
		return false
	}
	for i, d := range days {
		if d.Day != i+1 {
			return false
		}
		if d.Date != start.AddDate(0, 0, i).Format("2006-01-02") {
			return false
		}
		if len(d.Activities) == 0 {
			return false
		}
	}
	return true
}

func fallbackItinerary(req domain.TripRequest, dest domain.ResolvedDestination, activities []domain.Activity, days int) []domain.ItineraryDay {
	start, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		start = time.Now()
	}

	names := make([]string, 0, 3)
	for _, a := range activities {
		if len(names) == 3 {
			break
		}
		names = append(names, a.Name)
	}
	if len(names) == 0 {
		names = []string{
			fmt.Sprintf("Explore the sights of %s", dest.Name),
			"Visit a local market or museum",
			"Try the regional cuisine for dinner",
		}
	}
	suggestion := fmt.Sprintf("Explore %s with a focus on %s activities.", dest.Name, req.TravelStyle)

	itinerary := make([]domain.ItineraryDay, days)
	for i := range itinerary {
		itinerary[i] = domain.ItineraryDay{
			Day:         i + 1,
			Date:        start.AddDate(0, 0, i).Format("2006-01-02"),
			Activities:  names,
			Suggestions: suggestion,
		}
	}
	return itinerary
}

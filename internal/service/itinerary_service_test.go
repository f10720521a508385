package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/voyago/voyago-backend/internal/domain"
)

type stubItineraryModel struct {
	days    []domain.ItineraryDay
	err     error
	prompts []string
}

func (s *stubItineraryModel) GenerateItinerary(ctx context.Context, prompt string) ([]domain.ItineraryDay, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return nil, s.err
	}
	return s.days, nil
}

func modelDays(departureDate string, count int) []domain.ItineraryDay {
	days := make([]domain.ItineraryDay, count)
	for i := range days {
		days[i] = domain.ItineraryDay{
			Day:         i + 1,
			Date:        addDays(departureDate, i),
			Activities:  []string{"Morning walk", "Museum visit"},
			Suggestions: "Book tickets ahead.",
		}
	}
	return days
}

func addDays(date string, n int) string {
	t, _ := time.Parse("2006-01-02", date)
	return t.AddDate(0, 0, n).Format("2006-01-02")
}

func TestTripDurationDays(t *testing.T) {
	tests := []struct {
		departure string
		ret       string
		want      int
	}{
		{"2025-06-01", "2025-06-04", 4},
		{"2025-06-01", "2025-06-01", 1},
		{"2025-06-01", "", defaultTripDays},
		{"2025-06-01", "2025-05-30", defaultTripDays},
		{"bad-date", "2025-06-04", defaultTripDays},
	}
	for _, tc := range tests {
		if got := tripDurationDays(tc.departure, tc.ret); got != tc.want {
			t.Errorf("tripDurationDays(%q, %q) = %d, want %d", tc.departure, tc.ret, got, tc.want)
		}
	}
}

func TestItineraryService_AcceptsValidModelOutput(t *testing.T) {
	req := domain.TripRequest{
		Destination:       "CDG",
		DepartureDate:     "2026-09-01",
		ReturnDate:        "2026-09-04",
		Travelers:         2,
		Budget:            domain.BudgetTierMidRange,
		TravelStyle:       domain.TravelStyleCultural,
		AccommodationType: "hostel",
	}
	model := &stubItineraryModel{days: modelDays("2026-09-01", 4)}
	svc := NewItineraryService(model)

	got := svc.Generate(context.Background(), req, domain.ResolvedDestination{Name: "Paris", City: "Paris"}, nil)
	if len(got) != 4 {
		t.Fatalf("expected 4 days, got %d", len(got))
	}
	if got[3].Date != "2026-09-04" {
		t.Fatalf("expected last day on the return date, got %s", got[3].Date)
	}
	if len(model.prompts) != 1 || !strings.Contains(model.prompts[0], "4-day") {
		t.Fatalf("expected a 4-day prompt, got %v", model.prompts)
	}
	if !strings.Contains(model.prompts[0], "Accommodation: hostel") {
		t.Fatalf("expected the accommodation type in the prompt, got %q", model.prompts[0])
	}
}

func TestItineraryService_FallbackOnModelError(t *testing.T) {
	req := domain.TripRequest{
		Destination:   "CDG",
		DepartureDate: "2026-09-01",
		ReturnDate:    "2026-09-04",
		TravelStyle:   domain.TravelStyleAdventure,
	}
	activities := makeActivities("a", "b", "c", "d")
	model := &stubItineraryModel{err: errors.New("model unavailable")}
	svc := NewItineraryService(model)

	got := svc.Generate(context.Background(), req, domain.ResolvedDestination{Name: "Paris", City: "Paris"}, activities)
	if len(got) != 4 {
		t.Fatalf("expected a 4-day fallback, got %d days", len(got))
	}
	for i, day := range got {
		if day.Day != i+1 {
			t.Fatalf("expected day %d at index %d, got %d", i+1, i, day.Day)
		}
		if day.Date != addDays("2026-09-01", i) {
			t.Fatalf("expected gap-free dates, day %d got %s", day.Day, day.Date)
		}
		if len(day.Activities) != 3 {
			t.Fatalf("expected at most 3 fallback activities, got %d", len(day.Activities))
		}
	}
	if got[0].Suggestions != "Explore Paris with a focus on adventure activities." {
		t.Fatalf("unexpected fallback suggestion: %q", got[0].Suggestions)
	}
}

func TestItineraryService_FallbackOnWrongDayCount(t *testing.T) {
	req := domain.TripRequest{
		Destination:   "CDG",
		DepartureDate: "2026-09-01",
		ReturnDate:    "2026-09-04",
		TravelStyle:   domain.TravelStyleRelaxation,
	}
	// Model returned 3 days for a 4-day trip.
	model := &stubItineraryModel{days: modelDays("2026-09-01", 3)}
	svc := NewItineraryService(model)

	got := svc.Generate(context.Background(), req, domain.ResolvedDestination{Name: "Paris", City: "Paris"}, nil)
	if len(got) != 4 {
		t.Fatalf("expected the fallback to restore 4 days, got %d", len(got))
	}
}

func TestItineraryService_FallbackOnDateGap(t *testing.T) {
	req := domain.TripRequest{
		Destination:   "CDG",
		DepartureDate: "2026-09-01",
		ReturnDate:    "2026-09-03",
		TravelStyle:   domain.TravelStyleFamily,
	}
	days := modelDays("2026-09-01", 3)
	days[2].Date = "2026-09-05"
	model := &stubItineraryModel{days: days}
	svc := NewItineraryService(model)

	got := svc.Generate(context.Background(), req, domain.ResolvedDestination{Name: "Paris", City: "Paris"}, nil)
	if got[2].Date != "2026-09-03" {
		t.Fatalf("expected contiguous fallback dates, got %s", got[2].Date)
	}
}

func TestItineraryService_DefaultDaysWithoutReturnDate(t *testing.T) {
	req := domain.TripRequest{
		Destination:   "CDG",
		DepartureDate: "2026-09-01",
		TravelStyle:   domain.TravelStyleRomantic,
	}
	model := &stubItineraryModel{days: modelDays("2026-09-01", defaultTripDays)}
	svc := NewItineraryService(model)

	got := svc.Generate(context.Background(), req, domain.ResolvedDestination{Name: "Paris", City: "Paris"}, nil)
	if len(got) != defaultTripDays {
		t.Fatalf("expected %d days without a return date, got %d", defaultTripDays, len(got))
	}
}

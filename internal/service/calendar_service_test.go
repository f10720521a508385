package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/repository/descope"
	"github.com/voyago/voyago-backend/internal/repository/ports"
)

type stubTokenBroker struct {
	token string
	err   error
}

func (s *stubTokenBroker) UserAccessToken(ctx context.Context, appID, userID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.token, nil
}

type stubCalendarAPI struct {
	probeErr    error
	calendar    ports.CalendarRef
	failOnDay   map[string]error
	timedEvents []ports.TimedEvent
	dayEvents   []ports.AllDayEvent
}

func (s *stubCalendarAPI) Probe(ctx context.Context, token string) error {
	return s.probeErr
}

func (s *stubCalendarAPI) FindOrCreateCalendar(ctx context.Context, token, name string) (*ports.CalendarRef, error) {
	if s.calendar.ID == "" {
		s.calendar = ports.CalendarRef{ID: "cal-1", Summary: name}
	}
	return &s.calendar, nil
}

func (s *stubCalendarAPI) CreateTimedEvent(ctx context.Context, token, calendarID string, ev ports.TimedEvent) (*ports.CreatedEvent, error) {
	s.timedEvents = append(s.timedEvents, ev)
	return &ports.CreatedEvent{ID: "ev-timed", Link: "https://calendar/ev-timed"}, nil
}

func (s *stubCalendarAPI) CreateAllDayEvent(ctx context.Context, token, calendarID string, ev ports.AllDayEvent) (*ports.CreatedEvent, error) {
	if err, ok := s.failOnDay[ev.Date]; ok {
		return nil, err
	}
	s.dayEvents = append(s.dayEvents, ev)
	return &ports.CreatedEvent{ID: "ev-" + ev.Date}, nil
}

func calendarFixture(broker *stubTokenBroker, api *stubCalendarAPI, repo *memoryTripRepo) *CalendarService {
	trips := NewTripService(repo)
	return NewCalendarService(broker, api, trips, "google-calendar", "Travel Plans")
}

func fiveDayPlan() *domain.TripPlan {
	plan := &domain.TripPlan{
		Destination: domain.ResolvedDestination{
			Name: "Singapore Changi Airport",
			City: "Singapore",
		},
		DepartureDate: "2026-09-01",
		ReturnDate:    "2026-09-05",
	}
	for i := 0; i < 5; i++ {
		plan.Itinerary = append(plan.Itinerary, domain.ItineraryDay{
			Day:         i + 1,
			Date:        addDays("2026-09-01", i),
			Activities:  []string{"Gardens by the Bay", "Hawker dinner"},
			Suggestions: "Carry an umbrella.",
		})
	}
	return plan
}

func TestCalendarService_ExportItineraryCollectsPartialFailures(t *testing.T) {
	api := &stubCalendarAPI{
		failOnDay: map[string]error{"2026-09-03": errors.New("quota exceeded")},
	}
	repo := &memoryTripRepo{}
	svc := calendarFixture(&stubTokenBroker{token: "tok"}, api, repo)

	result, err := svc.ExportItinerary(context.Background(), uuid.New(), fiveDayPlan())
	if err != nil {
		t.Fatalf("ExportItinerary returned error: %v", err)
	}
	if result.Total != 5 {
		t.Fatalf("expected total 5, got %d", result.Total)
	}
	if len(result.Created) != 4 {
		t.Fatalf("expected 4 created events, got %d", len(result.Created))
	}
	if len(result.Failed) != 1 {
		t.Fatalf("expected 1 failed event, got %d", len(result.Failed))
	}
	if result.Failed[0].Day != 3 || result.Failed[0].Date != "2026-09-03" {
		t.Fatalf("unexpected failed entry: %+v", result.Failed[0])
	}
	if result.Failed[0].Error == "" {
		t.Fatalf("expected failure message to be carried")
	}
	if !result.TripSaved || len(repo.trips) != 1 {
		t.Fatalf("expected the trip to be saved after export")
	}
	if repo.trips[0].CalendarEventID == nil || !strings.HasPrefix(*repo.trips[0].CalendarEventID, "itinerary-") {
		t.Fatalf("expected an itinerary event marker on the saved trip")
	}
}

func TestCalendarService_ExportItineraryEventShape(t *testing.T) {
	api := &stubCalendarAPI{}
	svc := calendarFixture(&stubTokenBroker{token: "tok"}, api, &memoryTripRepo{})

	if _, err := svc.ExportItinerary(context.Background(), uuid.New(), fiveDayPlan()); err != nil {
		t.Fatalf("ExportItinerary returned error: %v", err)
	}
	if len(api.dayEvents) != 5 {
		t.Fatalf("expected 5 day events, got %d", len(api.dayEvents))
	}
	first := api.dayEvents[0]
	if first.Title != "Day 1: Singapore" {
		t.Fatalf("unexpected event title: %q", first.Title)
	}
	if !strings.Contains(first.Description, "Gardens by the Bay") || !strings.Contains(first.Description, "Carry an umbrella.") {
		t.Fatalf("expected activities and suggestion in the description, got %q", first.Description)
	}
}

func TestCalendarService_ExportSurvivesSaveFailure(t *testing.T) {
	api := &stubCalendarAPI{}
	repo := &memoryTripRepo{err: errors.New("database down")}
	svc := calendarFixture(&stubTokenBroker{token: "tok"}, api, repo)

	result, err := svc.ExportItinerary(context.Background(), uuid.New(), fiveDayPlan())
	if err != nil {
		t.Fatalf("expected export to survive a save failure, got %v", err)
	}
	if result.TripSaved {
		t.Fatalf("expected TripSaved=false when the save fails")
	}
	if len(result.Created) != 5 {
		t.Fatalf("expected all events created despite the save failure, got %d", len(result.Created))
	}
}

func TestCalendarService_NotConnectedMapsToSentinel(t *testing.T) {
	svc := calendarFixture(&stubTokenBroker{err: descope.ErrNotConnected}, &stubCalendarAPI{}, &memoryTripRepo{})

	if _, err := svc.ExportItinerary(context.Background(), uuid.New(), fiveDayPlan()); !errors.Is(err, ErrCalendarNotConnected) {
		t.Fatalf("expected ErrCalendarNotConnected, got %v", err)
	}

	status := svc.Status(context.Background(), uuid.New())
	if status.Connected {
		t.Fatalf("expected disconnected status")
	}
}

func TestCalendarService_ExportOverviewSpansTrip(t *testing.T) {
	api := &stubCalendarAPI{}
	svc := calendarFixture(&stubTokenBroker{token: "tok"}, api, &memoryTripRepo{})

	created, err := svc.ExportOverview(context.Background(), uuid.New(), ExportOverviewInput{
		Destination:   domain.ResolvedDestination{Name: "Lisbon", City: "Lisbon"},
		DepartureDate: "2026-09-01",
		ReturnDate:    "2026-09-05",
	})
	if err != nil {
		t.Fatalf("ExportOverview returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected a created event")
	}
	if len(api.timedEvents) != 1 {
		t.Fatalf("expected one timed event, got %d", len(api.timedEvents))
	}
	ev := api.timedEvents[0]
	if ev.Title != "Trip to Lisbon" {
		t.Fatalf("unexpected title: %q", ev.Title)
	}
	if !strings.HasPrefix(ev.Start, "2026-09-01") || !strings.HasPrefix(ev.End, "2026-09-05") {
		t.Fatalf("expected the event to span the trip, got %s..%s", ev.Start, ev.End)
	}
}

func TestCalendarService_StatusConnected(t *testing.T) {
	svc := calendarFixture(&stubTokenBroker{token: "tok"}, &stubCalendarAPI{}, &memoryTripRepo{})

	status := svc.Status(context.Background(), uuid.New())
	if !status.Connected {
		t.Fatalf("expected connected status, got %+v", status)
	}
}

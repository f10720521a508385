package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/repository/descope"
	"github.com/voyago/voyago-backend/internal/repository/googlecal"
	"github.com/voyago/voyago-backend/internal/repository/ports"
)

var (
	ErrCalendarNotConnected = errors.New("google calendar is not connected")
	ErrCalendarAuth         = errors.New("google calendar authorization expired, reconnect required")
	ErrCalendarAccess       = errors.New("could not access google calendar")
)

// CalendarService exports trips to the user's connected Google Calendar. The
// access token comes from the auth provider's outbound-app store, so this
// service never sees refresh tokens.
type CalendarService struct {
	broker       ports.CalendarTokenBroker
	calendars    ports.CalendarAPI
	trips        *TripService
	appID        string
	calendarName string
	now          func() time.Time
}

func NewCalendarService(broker ports.CalendarTokenBroker, calendars ports.CalendarAPI, trips *TripService, appID, calendarName string) *CalendarService {
	return &CalendarService{
		broker:       broker,
		calendars:    calendars,
		trips:        trips,
		appID:        appID,
		calendarName: calendarName,
		now:          time.Now,
	}
}

type CalendarStatus struct {
	Connected bool   `json:"connected"`
	Reason    string `json:"reason,omitempty"`
}

func (s *CalendarService) Status(ctx context.Context, userID uuid.UUID) CalendarStatus {
	token, err := s.broker.UserAccessToken(ctx, s.appID, userID.String())
	if err != nil {
		if errors.Is(err, descope.ErrNotConnected) {
			return CalendarStatus{Connected: false, Reason: "not connected"}
		}
		return CalendarStatus{Connected: false, Reason: err.Error()}
	}
	if err := s.calendars.Probe(ctx, token); err != nil {
		if googlecal.IsAuthError(err) {
			return CalendarStatus{Connected: false, Reason: "authorization expired"}
		}
		return CalendarStatus{Connected: false, Reason: "calendar unreachable"}
	}
	return CalendarStatus{Connected: true}
}

type ExportOverviewInput struct {
	Destination   domain.ResolvedDestination `json:"destination"`
	DepartureDate string                     `json:"departure_date"`
	ReturnDate    string                     `json:"return_date,omitempty"`
	Description   string                     `json:"description,omitempty"`
}

// ExportOverview creates one timed event spanning the whole trip.
func (s *CalendarService) ExportOverview(ctx context.Context, userID uuid.UUID, in ExportOverviewInput) (*ports.CreatedEvent, error) {
	token, calendarID, err := s.prepare(ctx, userID)
	if err != nil {
		return nil, err
	}

	endDate := in.ReturnDate
	if endDate == "" {
		endDate = in.DepartureDate
	}
	display := DestinationDisplayName(in.Destination)
	description := in.Description
	if description == "" {
		description = fmt.Sprintf("Trip to %s from %s to %s.", display, in.DepartureDate, endDate)
	}

	created, err := s.calendars.CreateTimedEvent(ctx, token, calendarID, ports.TimedEvent{
		Title:       fmt.Sprintf("Trip to %s", display),
		Description: description,
		Location:    in.Destination.Name,
		Start:       in.DepartureDate + "T09:00:00",
		End:         endDate + "T18:00:00",
		TimeZone:    "UTC",
	})
	if err != nil {
		return nil, s.mapCalendarError(err)
	}
	return created, nil
}

type ExportItineraryInput struct {
	Plan *domain.TripPlan `json:"plan"`
}

type FailedDayEvent struct {
	Day   int    `json:"day"`
	Date  string `json:"date"`
	Error string `json:"error"`
}

type ItineraryExportResult struct {
	CalendarID string               `json:"calendar_id"`
	Created    []ports.CreatedEvent `json:"created"`
	Failed     []FailedDayEvent     `json:"failed"`
	Total      int                  `json:"total"`
	TripSaved  bool                 `json:"trip_saved"`
}

// ExportItinerary creates one all-day event per itinerary day, collecting
// per-day failures instead of aborting, then saves the plan as a trip. A
// failed save does not undo the exported events.
func (s *CalendarService) ExportItinerary(ctx context.Context, userID uuid.UUID, plan *domain.TripPlan) (*ItineraryExportResult, error) {
	if plan == nil || len(plan.Itinerary) == 0 {
		return nil, errors.New("plan has no itinerary to export")
	}

	token, calendarID, err := s.prepare(ctx, userID)
	if err != nil {
		return nil, err
	}

	display := DestinationDisplayName(plan.Destination)
	result := &ItineraryExportResult{
		CalendarID: calendarID,
		Total:      len(plan.Itinerary),
	}

	for _, day := range plan.Itinerary {
		created, err := s.calendars.CreateAllDayEvent(ctx, token, calendarID, ports.AllDayEvent{
			Title:       fmt.Sprintf("Day %d: %s", day.Day, display),
			Description: dayEventDescription(day),
			Location:    plan.Destination.Name,
			Date:        day.Date,
		})
		if err != nil {
			log.Printf("calendar event for day %d failed: %v", day.Day, err)
			result.Failed = append(result.Failed, FailedDayEvent{
				Day:   day.Day,
				Date:  day.Date,
				Error: err.Error(),
			})
			continue
		}
		result.Created = append(result.Created, *created)
	}

	eventID := fmt.Sprintf("itinerary-%d", s.now().UnixMilli())
	if _, err := s.trips.SavePlan(ctx, userID, plan, &eventID); err != nil {
		// The calendar events exist either way; report and move on.
		log.Printf("saving exported trip failed: %v", err)
	} else {
		result.TripSaved = true
	}

	return result, nil
}

// prepare fetches the user's token, verifies it, and resolves the dedicated
// travel calendar.
func (s *CalendarService) prepare(ctx context.Context, userID uuid.UUID) (token, calendarID string, err error) {
	token, err = s.broker.UserAccessToken(ctx, s.appID, userID.String())
	if err != nil {
		if errors.Is(err, descope.ErrNotConnected) {
			return "", "", ErrCalendarNotConnected
		}
		return "", "", fmt.Errorf("%w: %v", ErrCalendarAccess, err)
	}

	if err = s.calendars.Probe(ctx, token); err != nil {
		return "", "", s.mapCalendarError(err)
	}

	ref, err := s.calendars.FindOrCreateCalendar(ctx, token, s.calendarName)
	if err != nil {
		return "", "", s.mapCalendarError(err)
	}
	return token, ref.ID, nil
}

func (s *CalendarService) mapCalendarError(err error) error {
	if googlecal.IsAuthError(err) {
		return ErrCalendarAuth
	}
	return fmt.Errorf("%w: %v", ErrCalendarAccess, err)
}

func dayEventDescription(day domain.ItineraryDay) string {
	var b strings.Builder
	b.WriteString("Planned activities:\n")
	for _, activity := range day.Activities {
		fmt.Fprintf(&b, "• %s\n", activity)
	}
	if day.Suggestions != "" {
		b.WriteString("\n")
		b.WriteString(day.Suggestions)
	}
	return b.String()
}

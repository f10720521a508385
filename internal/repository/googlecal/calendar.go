// Package googlecal adapts the Google Calendar v3 API for trip export. All
// calls authenticate with the per-user OAuth access token obtained from the
// outbound-app broker.
package googlecal

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/voyago/voyago-backend/internal/repository/ports"
)

const calendarColorBlue = "9"

type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) service(ctx context.Context, token string) (*calendar.Service, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return calendar.NewService(ctx, option.WithTokenSource(source))
}

// Probe verifies the token with a minimal calendar-list read.
func (a *Adapter) Probe(ctx context.Context, token string) error {
	srv, err := a.service(ctx, token)
	if err != nil {
		return err
	}
	_, err = srv.CalendarList.List().MaxResults(1).Context(ctx).Do()
	return err
}

func (a *Adapter) FindOrCreateCalendar(ctx context.Context, token, name string) (*ports.CalendarRef, error) {
	srv, err := a.service(ctx, token)
	if err != nil {
		return nil, err
	}

	list, err := srv.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list calendars: %w", err)
	}
	for _, item := range list.Items {
		if item.Summary == name && (item.AccessRole == "owner" || item.AccessRole == "writer") {
			return &ports.CalendarRef{ID: item.Id, Summary: item.Summary}, nil
		}
	}

	created, err := srv.Calendars.Insert(&calendar.Calendar{
		Summary:     name,
		Description: "Planned trips and itineraries managed by Voyago.",
		TimeZone:    "UTC",
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create calendar: %w", err)
	}
	return &ports.CalendarRef{ID: created.Id, Summary: created.Summary}, nil
}

func (a *Adapter) CreateTimedEvent(ctx context.Context, token, calendarID string, ev ports.TimedEvent) (*ports.CreatedEvent, error) {
	srv, err := a.service(ctx, token)
	if err != nil {
		return nil, err
	}

	timeZone := ev.TimeZone
	if timeZone == "" {
		timeZone = "UTC"
	}
	event := &calendar.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       &calendar.EventDateTime{DateTime: ev.Start, TimeZone: timeZone},
		End:         &calendar.EventDateTime{DateTime: ev.End, TimeZone: timeZone},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 30},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := srv.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return &ports.CreatedEvent{ID: created.Id, Link: created.HtmlLink}, nil
}

func (a *Adapter) CreateAllDayEvent(ctx context.Context, token, calendarID string, ev ports.AllDayEvent) (*ports.CreatedEvent, error) {
	srv, err := a.service(ctx, token)
	if err != nil {
		return nil, err
	}

	event := &calendar.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       &calendar.EventDateTime{Date: ev.Date, TimeZone: "UTC"},
		End:         &calendar.EventDateTime{Date: ev.Date, TimeZone: "UTC"},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 8 * 60},
			},
			ForceSendFields: []string{"UseDefault"},
		},
		ColorId: calendarColorBlue,
		// Planning events show as free time.
		Transparency: "transparent",
	}

	created, err := srv.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return &ports.CreatedEvent{ID: created.Id, Link: created.HtmlLink}, nil
}

// IsAuthError reports whether err is a Google API 401/403, meaning the token
// is expired or lacks scope and the user must reconnect.
func IsAuthError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 401 || apiErr.Code == 403
	}
	return false
}

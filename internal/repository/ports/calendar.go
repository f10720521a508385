package ports

import "context"

// CalendarTokenBroker fetches a per-user outbound access token for a connected
// calendar application. An empty or whitespace-only token is reported as an
// error, never returned.
type CalendarTokenBroker interface {
	UserAccessToken(ctx context.Context, appID, userID string) (string, error)
}

type CalendarRef struct {
	ID      string
	Summary string
}

type TimedEvent struct {
	Title       string
	Description string
	Location    string
	Start       string
	End         string
	TimeZone    string
}

type AllDayEvent struct {
	Title       string
	Description string
	Location    string
	Date        string
}

type CreatedEvent struct {
	ID   string
	Link string
}

type CalendarAPI interface {
	// Probe performs a lightweight read to verify the token is usable.
	Probe(ctx context.Context, token string) error
	// FindOrCreateCalendar locates the application-owned calendar by exact
	// name and owner/writer role, creating it when absent.
	FindOrCreateCalendar(ctx context.Context, token, name string) (*CalendarRef, error)
	CreateTimedEvent(ctx context.Context, token, calendarID string, ev TimedEvent) (*CreatedEvent, error)
	CreateAllDayEvent(ctx context.Context, token, calendarID string, ev AllDayEvent) (*CreatedEvent, error)
}

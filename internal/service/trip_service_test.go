package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/repository/ports"
)

type memoryTripRepo struct {
	trips []domain.Trip
	err   error
}

func (r *memoryTripRepo) Create(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
	if r.err != nil {
		return nil, r.err
	}
	stored := *trip
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.trips = append(r.trips, stored)
	return &stored, nil
}

func (r *memoryTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Trip
	for _, t := range r.trips {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memoryTripRepo) Update(ctx context.Context, id, userID uuid.UUID, update ports.TripUpdate) (*domain.Trip, error) {
	for i := range r.trips {
		if r.trips[i].ID != id || r.trips[i].UserID != userID {
			continue
		}
		if update.Title != nil {
			r.trips[i].Title = *update.Title
		}
		if update.StartDate != nil {
			r.trips[i].StartDate = *update.StartDate
		}
		if update.EndDate != nil {
			r.trips[i].EndDate = *update.EndDate
		}
		if update.Status != nil {
			r.trips[i].Status = *update.Status
		}
		copied := r.trips[i]
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (r *memoryTripRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	for i := range r.trips {
		if r.trips[i].ID == id && r.trips[i].UserID == userID {
			r.trips = append(r.trips[:i], r.trips[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func fixedClock(value string) func() time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return func() time.Time { return t }
}

func TestTripService_SaveTripDerivesStatus(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo := &memoryTripRepo{}
	svc := NewTripService(repo)
	svc.now = fixedClock("2026-08-15T12:00:00Z")

	tests := []struct {
		start, end string
		want       domain.TripStatus
	}{
		{"2026-09-01", "2026-09-05", domain.TripStatusUpcoming},
		{"2026-08-10", "2026-08-20", domain.TripStatusOngoing},
		{"2026-08-10", "2026-08-15", domain.TripStatusOngoing},
		{"2026-07-01", "2026-07-05", domain.TripStatusCompleted},
	}
	for _, tc := range tests {
		trip, err := svc.SaveTrip(ctx, userID, SaveTripInput{
			Title:       "Test",
			Destination: domain.ResolvedDestination{Name: "Paris"},
			StartDate:   tc.start,
			EndDate:     tc.end,
		})
		if err != nil {
			t.Fatalf("SaveTrip returned error: %v", err)
		}
		if trip.Status != tc.want {
			t.Errorf("trip %s..%s: expected status %s, got %s", tc.start, tc.end, tc.want, trip.Status)
		}
	}
}

func TestTripService_SaveTripRequiresCoreFields(t *testing.T) {
	ctx := context.Background()
	svc := NewTripService(&memoryTripRepo{})

	_, err := svc.SaveTrip(ctx, uuid.New(), SaveTripInput{
		Title:     "No destination",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-05",
	})
	if !errors.Is(err, ErrMissingTripField) {
		t.Fatalf("expected ErrMissingTripField, got %v", err)
	}
}

func TestTripService_SavePlanTitlesAfterDestination(t *testing.T) {
	ctx := context.Background()
	repo := &memoryTripRepo{}
	svc := NewTripService(repo)

	plan := &domain.TripPlan{
		Destination: domain.ResolvedDestination{
			Name: "Charles de Gaulle Airport",
			City: "Paris",
		},
		DepartureDate: "2026-09-01",
		ReturnDate:    "2026-09-05",
		Itinerary:     []domain.ItineraryDay{{Day: 1, Date: "2026-09-01", Activities: []string{"Louvre"}}},
	}
	trip, err := svc.SavePlan(ctx, uuid.New(), plan, nil)
	if err != nil {
		t.Fatalf("SavePlan returned error: %v", err)
	}
	if trip.Title != "Trip to Paris" {
		t.Fatalf("expected title from the display name, got %q", trip.Title)
	}
	if trip.EndDate != "2026-09-05" {
		t.Fatalf("expected end date from the return date, got %s", trip.EndDate)
	}
}

func TestTripService_ListRecomputesStatus(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo := &memoryTripRepo{trips: []domain.Trip{{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     "Old trip",
		StartDate: "2026-01-01",
		EndDate:   "2026-01-05",
		Status:    domain.TripStatusUpcoming,
	}}}
	svc := NewTripService(repo)
	svc.now = fixedClock("2026-08-15T12:00:00Z")

	trips, err := svc.List(ctx, userID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(trips) != 1 {
		t.Fatalf("expected one trip, got %d", len(trips))
	}
	if trips[0].Status != domain.TripStatusCompleted {
		t.Fatalf("expected stale status to be recomputed to completed, got %s", trips[0].Status)
	}
}

func TestTripService_UpdateRecomputesStatusOnDateChange(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	tripID := uuid.New()
	repo := &memoryTripRepo{trips: []domain.Trip{{
		ID:        tripID,
		UserID:    userID,
		Title:     "Trip",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-05",
		Status:    domain.TripStatusUpcoming,
	}}}
	svc := NewTripService(repo)
	svc.now = fixedClock("2026-08-15T12:00:00Z")

	newStart := "2026-08-10"
	newEnd := "2026-08-20"
	trip, err := svc.Update(ctx, tripID, userID, ports.TripUpdate{StartDate: &newStart, EndDate: &newEnd})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if trip.Status != domain.TripStatusOngoing {
		t.Fatalf("expected ongoing after date change, got %s", trip.Status)
	}
}

func TestTripService_UpdateAndDeleteScopedToOwner(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	intruder := uuid.New()
	tripID := uuid.New()
	repo := &memoryTripRepo{trips: []domain.Trip{{
		ID:        tripID,
		UserID:    owner,
		Title:     "Private trip",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-05",
	}}}
	svc := NewTripService(repo)

	title := "Hijacked"
	if _, err := svc.Update(ctx, tripID, intruder, ports.TripUpdate{Title: &title}); !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound for foreign update, got %v", err)
	}
	if err := svc.Delete(ctx, tripID, intruder); !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound for foreign delete, got %v", err)
	}
	if err := svc.Delete(ctx, tripID, owner); err != nil {
		t.Fatalf("owner delete returned error: %v", err)
	}
}

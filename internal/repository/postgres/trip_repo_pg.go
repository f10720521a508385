package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/repository/ports"
)

type TripRepository struct {
	db *sqlx.DB
}

func NewTripRepo(db *sqlx.DB) *TripRepository {
	return &TripRepository{db: db}
}

// tripRow holds the raw JSONB columns before they are unpacked into the
// domain struct.
type tripRow struct {
	ID              uuid.UUID `db:"id"`
	UserID          uuid.UUID `db:"user_id"`
	Title           string    `db:"title"`
	Destination     []byte    `db:"destination"`
	StartDate       string    `db:"start_date"`
	EndDate         string    `db:"end_date"`
	Status          string    `db:"status"`
	CalendarEventID *string   `db:"calendar_event_id"`
	Flights         []byte    `db:"flights"`
	Hotels          []byte    `db:"hotels"`
	Activities      []byte    `db:"activities"`
	Itinerary       []byte    `db:"itinerary"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

const tripColumns = `id, user_id, title, destination, start_date, end_date, status, calendar_event_id, flights, hotels, activities, itinerary, created_at, updated_at`

func (row *tripRow) toDomain() (*domain.Trip, error) {
	trip := domain.Trip{
		ID:              row.ID,
		UserID:          row.UserID,
		Title:           row.Title,
		StartDate:       row.StartDate,
		EndDate:         row.EndDate,
		Status:          domain.TripStatus(row.Status),
		CalendarEventID: row.CalendarEventID,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	if err := json.Unmarshal(row.Destination, &trip.Destination); err != nil {
		return nil, err
	}
	for _, col := range []struct {
		raw []byte
		dst any
	}{
		{row.Flights, &trip.Flights},
		{row.Hotels, &trip.Hotels},
		{row.Activities, &trip.Activities},
		{row.Itinerary, &trip.Itinerary},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return nil, err
		}
	}
	return &trip, nil
}

func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) (*domain.Trip, error) {
	const query = `
        INSERT INTO trip (user_id, title, destination, start_date, end_date, status, calendar_event_id, flights, hotels, activities, itinerary)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING ` + tripColumns

	destination, err := json.Marshal(trip.Destination)
	if err != nil {
		return nil, err
	}
	flights, err := marshalOrEmptyList(trip.Flights)
	if err != nil {
		return nil, err
	}
	hotels, err := marshalOrEmptyList(trip.Hotels)
	if err != nil {
		return nil, err
	}
	activities, err := marshalOrEmptyList(trip.Activities)
	if err != nil {
		return nil, err
	}
	itinerary, err := marshalOrEmptyList(trip.Itinerary)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowxContext(ctx, query,
		trip.UserID, trip.Title, destination, trip.StartDate, trip.EndDate,
		string(trip.Status), trip.CalendarEventID, flights, hotels, activities, itinerary)
	var stored tripRow
	if err := row.StructScan(&stored); err != nil {
		return nil, err
	}
	return stored.toDomain()
}

func (r *TripRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	const query = `
        SELECT ` + tripColumns + `
        FROM trip
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
    `
	var rows []tripRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}
	trips := make([]domain.Trip, 0, len(rows))
	for i := range rows {
		trip, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		trips = append(trips, *trip)
	}
	return trips, nil
}

func (r *TripRepository) Update(ctx context.Context, id, userID uuid.UUID, update ports.TripUpdate) (*domain.Trip, error) {
	const query = `
        UPDATE trip
        SET title = COALESCE($3, title),
            start_date = COALESCE($4, start_date),
            end_date = COALESCE($5, end_date),
            status = COALESCE($6, status),
            updated_at = NOW()
        WHERE id = $1 AND user_id = $2
        RETURNING ` + tripColumns

	var status *string
	if update.Status != nil {
		s := string(*update.Status)
		status = &s
	}
	row := r.db.QueryRowxContext(ctx, query, id, userID, update.Title, update.StartDate, update.EndDate, status)
	var stored tripRow
	if err := row.StructScan(&stored); err != nil {
		return nil, err
	}
	return stored.toDomain()
}

func (r *TripRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	const query = `
        DELETE FROM trip
        WHERE id = $1 AND user_id = $2
    `
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func marshalOrEmptyList(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(data) == "null" {
		return []byte("[]"), nil
	}
	return data, nil
}

package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/voyago/voyago-backend/internal/domain"
)

// TripUpdate carries a partial update; nil fields are left untouched.
type TripUpdate struct {
	Title     *string
	StartDate *string
	EndDate   *string
	Status    *domain.TripStatus
}

type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) (*domain.Trip, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	Update(ctx context.Context, id, userID uuid.UUID, update TripUpdate) (*domain.Trip, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

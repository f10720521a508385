package ports

import (
	"context"

	"github.com/voyago/voyago-backend/internal/domain"
)

// Geocoder resolves a free-text query to coordinates. Implementations return
// an error when the query yields no result.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*domain.ResolvedDestination, error)
}

package ports

import (
	"context"

	"github.com/voyago/voyago-backend/internal/domain"
)

// ItineraryModel asks a generative model for a structured day-by-day plan.
type ItineraryModel interface {
	GenerateItinerary(ctx context.Context, prompt string) ([]domain.ItineraryDay, error)
}

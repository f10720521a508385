package ports

import "context"

// RateSource fetches a USD-relative exchange-rate table.
type RateSource interface {
	FetchRates(ctx context.Context) (map[string]float64, error)
}

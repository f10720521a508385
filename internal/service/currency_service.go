package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/repository/ports"
)

const rateCacheTTL = time.Hour

var (
	ErrUnsupportedCurrency = errors.New("unsupported currency code")
	ErrRatesUnavailable    = errors.New("exchange rates unavailable")
)

// CurrencyService converts amounts through USD-based rates, refreshing the
// cached snapshot at most once per rateCacheTTL.
type CurrencyService struct {
	source ports.RateSource
	now    func() time.Time

	mu       sync.Mutex
	snapshot domain.RateSnapshot
}

func NewCurrencyService(source ports.RateSource) *CurrencyService {
	return &CurrencyService{source: source, now: time.Now}
}

func (s *CurrencyService) Rates(ctx context.Context) (domain.RateSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.FreshAt(s.now(), rateCacheTTL) {
		return s.snapshot, nil
	}

	rates, err := s.source.FetchRates(ctx)
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: %v", ErrRatesUnavailable, err)
	}
	s.snapshot = domain.RateSnapshot{Rates: rates, FetchedAt: s.now()}
	return s.snapshot, nil
}

// Convert bridges through USD: an amount in `from` is divided by the USD
// rate of `from`, then multiplied by the USD rate of `to`.
func (s *CurrencyService) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	if !domain.IsSupportedCurrency(from) || !domain.IsSupportedCurrency(to) {
		return 0, ErrUnsupportedCurrency
	}
	if from == to {
		return amount, nil
	}

	snap, err := s.Rates(ctx)
	if err != nil {
		return 0, err
	}

	usd := amount
	if from != "USD" {
		fromRate, ok := snap.Rates[from]
		if !ok || fromRate == 0 {
			return 0, fmt.Errorf("%w: no rate for %s", ErrRatesUnavailable, from)
		}
		usd = amount / fromRate
	}
	converted := usd
	if to != "USD" {
		toRate, ok := snap.Rates[to]
		if !ok || toRate == 0 {
			return 0, fmt.Errorf("%w: no rate for %s", ErrRatesUnavailable, to)
		}
		converted = usd * toRate
	}
	return round2(converted), nil
}

type ConversionItem struct {
	Amount    *float64 `json:"amount"`
	Currency  string   `json:"currency"`
	Converted float64  `json:"converted,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// ConvertBatch converts each item into the target currency. Malformed items
// carry a per-item error instead of failing the batch.
func (s *CurrencyService) ConvertBatch(ctx context.Context, items []ConversionItem, to string) ([]ConversionItem, error) {
	if !domain.IsSupportedCurrency(to) {
		return nil, ErrUnsupportedCurrency
	}

	out := make([]ConversionItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].Amount == nil {
			out[i].Error = "missing amount"
			continue
		}
		if out[i].Currency == "" {
			out[i].Error = "missing currency"
			continue
		}
		converted, err := s.Convert(ctx, *out[i].Amount, out[i].Currency, to)
		if err != nil {
			out[i].Error = err.Error()
			continue
		}
		out[i].Converted = converted
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

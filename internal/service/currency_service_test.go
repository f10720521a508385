package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubRateSource struct {
	rates map[string]float64
	err   error
	calls int
}

func (s *stubRateSource) FetchRates(ctx context.Context) (map[string]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rates, nil
}

func TestCurrencyService_ConvertBridgesThroughUSD(t *testing.T) {
	ctx := context.Background()
	source := &stubRateSource{rates: map[string]float64{
		"USD": 1,
		"EUR": 0.9,
		"GBP": 0.8,
	}}
	svc := NewCurrencyService(source)

	got, err := svc.Convert(ctx, 90, "EUR", "GBP")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	// 90 EUR -> 100 USD -> 80 GBP.
	if got != 80 {
		t.Fatalf("expected 80, got %v", got)
	}

	got, err = svc.Convert(ctx, 100, "USD", "EUR")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != 90 {
		t.Fatalf("expected 90, got %v", got)
	}
}

func TestCurrencyService_ConvertIdentityAndRounding(t *testing.T) {
	ctx := context.Background()
	svc := NewCurrencyService(&stubRateSource{rates: map[string]float64{"USD": 1, "JPY": 150}})

	got, err := svc.Convert(ctx, 12.345, "USD", "USD")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != 12.345 {
		t.Fatalf("expected identity conversion returned untouched, got %v", got)
	}

	got, err = svc.Convert(ctx, 10.555, "JPY", "JPY")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != 10.555 {
		t.Fatalf("expected identity conversion returned untouched, got %v", got)
	}

	got, err = svc.Convert(ctx, 1, "JPY", "USD")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != 0.01 {
		t.Fatalf("expected 0.01, got %v", got)
	}
}

func TestCurrencyService_ConvertUSDEndpointsWithoutUSDRate(t *testing.T) {
	ctx := context.Background()
	svc := NewCurrencyService(&stubRateSource{rates: map[string]float64{"JPY": 150}})

	got, err := svc.Convert(ctx, 150, "JPY", "USD")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}

	got, err = svc.Convert(ctx, 2, "USD", "JPY")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != 300 {
		t.Fatalf("expected 300, got %v", got)
	}
}

func TestCurrencyService_ConvertRejectsUnsupportedCodesBeforeFetch(t *testing.T) {
	ctx := context.Background()
	source := &stubRateSource{rates: map[string]float64{"USD": 1}}
	svc := NewCurrencyService(source)

	if _, err := svc.Convert(ctx, 10, "XYZ", "USD"); !errors.Is(err, ErrUnsupportedCurrency) {
		t.Fatalf("expected ErrUnsupportedCurrency, got %v", err)
	}
	if _, err := svc.Convert(ctx, 10, "USD", "XYZ"); !errors.Is(err, ErrUnsupportedCurrency) {
		t.Fatalf("expected ErrUnsupportedCurrency, got %v", err)
	}
	if source.calls != 0 {
		t.Fatalf("expected no fetches for unsupported codes, got %d", source.calls)
	}
}

func TestCurrencyService_RatesCachedWithinTTL(t *testing.T) {
	ctx := context.Background()
	source := &stubRateSource{rates: map[string]float64{"USD": 1, "EUR": 0.9}}
	svc := NewCurrencyService(source)

	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	if _, err := svc.Rates(ctx); err != nil {
		t.Fatalf("Rates returned error: %v", err)
	}
	if _, err := svc.Rates(ctx); err != nil {
		t.Fatalf("Rates returned error: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected one fetch within the TTL, got %d", source.calls)
	}

	clock = clock.Add(rateCacheTTL + time.Minute)
	if _, err := svc.Rates(ctx); err != nil {
		t.Fatalf("Rates returned error: %v", err)
	}
	if source.calls != 2 {
		t.Fatalf("expected a refetch after the TTL, got %d fetches", source.calls)
	}
}

func TestCurrencyService_FetchFailureSurfacesError(t *testing.T) {
	ctx := context.Background()
	svc := NewCurrencyService(&stubRateSource{err: errors.New("upstream down")})

	if _, err := svc.Convert(ctx, 10, "USD", "EUR"); !errors.Is(err, ErrRatesUnavailable) {
		t.Fatalf("expected ErrRatesUnavailable, got %v", err)
	}
}

func TestCurrencyService_ConvertBatchKeepsPerItemErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewCurrencyService(&stubRateSource{rates: map[string]float64{"USD": 1, "EUR": 0.9}})

	amount := 90.0
	items := []ConversionItem{
		{Amount: &amount, Currency: "EUR"},
		{Currency: "EUR"},
		{Amount: &amount},
	}

	out, err := svc.ConvertBatch(ctx, items, "USD")
	if err != nil {
		t.Fatalf("ConvertBatch returned error: %v", err)
	}
	if out[0].Error != "" || out[0].Converted != 100 {
		t.Fatalf("expected first item converted to 100, got %+v", out[0])
	}
	if out[1].Error == "" {
		t.Fatalf("expected missing-amount error on second item")
	}
	if out[2].Error == "" {
		t.Fatalf("expected missing-currency error on third item")
	}
}

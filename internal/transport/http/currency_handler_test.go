package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/voyago/voyago-backend/internal/service"
	"github.com/voyago/voyago-backend/internal/util"
)

type fixedRateSource struct {
	rates map[string]float64
}

func (s *fixedRateSource) FetchRates(ctx context.Context) (map[string]float64, error) {
	return s.rates, nil
}

func newCurrencyHandler() *CurrencyHandler {
	svc := service.NewCurrencyService(&fixedRateSource{rates: map[string]float64{
		"USD": 1,
		"EUR": 0.9,
	}})
	return &CurrencyHandler{currencies: svc}
}

func TestCurrencyRoutesRequireAuth(t *testing.T) {
	auth := service.NewAuthService(nil, nil, util.NewJWTManager("test-secret", time.Hour), "")
	e := NewRouter([]string{"*"})
	RegisterCurrency(e, auth, service.NewCurrencyService(&fixedRateSource{}))

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/currency/convert?from=USD&to=EUR&amount=10"},
		{http.MethodGet, "/api/v1/currency/currencies"},
		{http.MethodPost, "/api/v1/currency/convert"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 without a session, got %d", route.method, route.path, rec.Code)
		}
	}
}

func TestCurrencyHandler_ConvertQuery(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/convert?amount=100&from=usd&to=eur", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := newCurrencyHandler().convertQuery(c); err != nil {
		t.Fatalf("convertQuery returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		From struct {
			Currency string  `json:"currency"`
			Amount   float64 `json:"amount"`
			Symbol   string  `json:"symbol"`
		} `json:"from"`
		To struct {
			Currency string  `json:"currency"`
			Amount   float64 `json:"amount"`
			Symbol   string  `json:"symbol"`
		} `json:"to"`
		Rate float64 `json:"rate"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.To.Amount != 90 {
		t.Fatalf("expected 90, got %v", resp.To.Amount)
	}
	if resp.From.Currency != "USD" || resp.To.Currency != "EUR" {
		t.Fatalf("expected uppercased codes, got %s %s", resp.From.Currency, resp.To.Currency)
	}
	if resp.Rate != 0.9 {
		t.Fatalf("expected unit rate 0.9, got %v", resp.Rate)
	}
	if resp.From.Symbol != "$" || resp.To.Symbol != "€" {
		t.Fatalf("unexpected symbols %q %q", resp.From.Symbol, resp.To.Symbol)
	}
}

func TestCurrencyHandler_ConvertQueryValidation(t *testing.T) {
	e := echo.New()
	handler := newCurrencyHandler()

	for _, query := range []string{
		"?from=USD&to=EUR",
		"?amount=abc&from=USD&to=EUR",
		"?amount=10&from=XXX&to=EUR",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/convert"+query, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler.convertQuery(c); err != nil {
			t.Fatalf("convertQuery returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q: expected 400, got %d", query, rec.Code)
		}
	}
}

func TestCurrencyHandler_ConvertBatch(t *testing.T) {
	e := echo.New()
	body := `{"targetCurrency":"usd","prices":[{"amount":90,"currency":"EUR"},{"currency":"EUR"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/currency/convert", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := newCurrencyHandler().convertBatch(c); err != nil {
		t.Fatalf("convertBatch returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ConvertedPrices []service.ConversionItem `json:"convertedPrices"`
		TargetCurrency  string                   `json:"targetCurrency"`
		TargetSymbol    string                   `json:"targetSymbol"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.ConvertedPrices) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.ConvertedPrices))
	}
	if resp.ConvertedPrices[0].Converted != 100 || resp.ConvertedPrices[0].Error != "" {
		t.Fatalf("unexpected first item: %+v", resp.ConvertedPrices[0])
	}
	if resp.ConvertedPrices[1].Error == "" {
		t.Fatalf("expected a per-item error for the missing amount")
	}
	if resp.TargetCurrency != "USD" || resp.TargetSymbol != "$" {
		t.Fatalf("unexpected target %q %q", resp.TargetCurrency, resp.TargetSymbol)
	}
}

func TestCurrencyHandler_ListCurrencies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/currency/currencies", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := newCurrencyHandler().listCurrencies(c); err != nil {
		t.Fatalf("listCurrencies returned error: %v", err)
	}

	var resp struct {
		Currencies []currencyEntry `json:"currencies"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Currencies) == 0 {
		t.Fatalf("expected currencies in the response")
	}
	for i := 1; i < len(resp.Currencies); i++ {
		if resp.Currencies[i-1].Code > resp.Currencies[i].Code {
			t.Fatalf("expected codes sorted, %q before %q", resp.Currencies[i-1].Code, resp.Currencies[i].Code)
		}
	}
}

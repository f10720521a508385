package http

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/voyago/voyago-backend/internal/domain"
	"github.com/voyago/voyago-backend/internal/service"
	"github.com/voyago/voyago-backend/internal/util"
)

type CurrencyHandler struct {
	currencies *service.CurrencyService
}

func RegisterCurrency(e *echo.Echo, auth *service.AuthService, currencies *service.CurrencyService) {
	handler := &CurrencyHandler{currencies: currencies}

	group := e.Group("/api/v1/currency", RequireAuth(auth))
	group.GET("/currencies", handler.listCurrencies)
	group.GET("/convert", handler.convertQuery)
	group.POST("/convert", handler.convertBatch)
}

type currencyEntry struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

func (h *CurrencyHandler) listCurrencies(c echo.Context) error {
	entries := make([]currencyEntry, 0, len(domain.SupportedCurrencies))
	for code, info := range domain.SupportedCurrencies {
		entries = append(entries, currencyEntry{Code: code, Symbol: info.Symbol, Name: info.Name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	return c.JSON(http.StatusOK, echo.Map{"currencies": entries})
}

func (h *CurrencyHandler) convertQuery(c echo.Context) error {
	amountParam := strings.TrimSpace(c.QueryParam("amount"))
	from := strings.ToUpper(strings.TrimSpace(c.QueryParam("from")))
	to := strings.ToUpper(strings.TrimSpace(c.QueryParam("to")))

	if amountParam == "" || from == "" || to == "" {
		return c.JSON(http.StatusBadRequest, util.Error("amount, from and to are required"))
	}
	amount, err := strconv.ParseFloat(amountParam, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("amount must be a number"))
	}

	ctx := c.Request().Context()
	converted, err := h.currencies.Convert(ctx, amount, from, to)
	if err != nil {
		return h.conversionError(c, err)
	}
	rate, err := h.currencies.Convert(ctx, 1, from, to)
	if err != nil {
		return h.conversionError(c, err)
	}
	snapshot, err := h.currencies.Rates(ctx)
	if err != nil {
		return h.conversionError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"from": echo.Map{
			"currency": from,
			"amount":   amount,
			"symbol":   domain.SupportedCurrencies[from].Symbol,
		},
		"to": echo.Map{
			"currency": to,
			"amount":   converted,
			"symbol":   domain.SupportedCurrencies[to].Symbol,
		},
		"rate":      rate,
		"timestamp": snapshot.FetchedAt,
	})
}

func (h *CurrencyHandler) convertBatch(c echo.Context) error {
	var req struct {
		TargetCurrency string                   `json:"targetCurrency"`
		Prices         []service.ConversionItem `json:"prices"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	req.TargetCurrency = strings.ToUpper(strings.TrimSpace(req.TargetCurrency))
	if req.TargetCurrency == "" {
		return c.JSON(http.StatusBadRequest, util.Error("targetCurrency is required"))
	}
	if len(req.Prices) == 0 {
		return c.JSON(http.StatusBadRequest, util.Error("prices are required"))
	}

	converted, err := h.currencies.ConvertBatch(c.Request().Context(), req.Prices, req.TargetCurrency)
	if err != nil {
		return h.conversionError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"convertedPrices": converted,
		"targetCurrency":  req.TargetCurrency,
		"targetSymbol":    domain.SupportedCurrencies[req.TargetCurrency].Symbol,
	})
}

func (h *CurrencyHandler) conversionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrUnsupportedCurrency):
		return c.JSON(http.StatusBadRequest, util.Error("unsupported currency code"))
	case errors.Is(err, service.ErrRatesUnavailable):
		return c.JSON(http.StatusServiceUnavailable, util.Error("exchange rates are temporarily unavailable"))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("unable to convert"))
	}
}

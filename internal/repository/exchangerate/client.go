// Package exchangerate fetches a USD-base rate table from an external
// exchange-rate provider.
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	ratesURL   string
	httpClient *http.Client
}

func New(ratesURL string) *Client {
	return &Client{
		ratesURL:   ratesURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) FetchRates(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ratesURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch exchange rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch exchange rates: status %d", resp.StatusCode)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("fetch exchange rates: decode: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("fetch exchange rates: empty rate table")
	}
	return payload.Rates, nil
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ExchangeClient fetches spot rates from ExchangeRate-API. When the API is
// unreachable it falls back to a static table of major-currency rates
// against USD so budget analysis can still proceed with rough numbers.
type ExchangeClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewExchangeClient() *ExchangeClient {
	return &ExchangeClient{
		baseURL: "https://api.exchangerate-api.com",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Rough rates against 1 USD, last resort only.
var fallbackUSDRates = map[string]float64{
	"USD": 1.0, "INR": 83.0, "EUR": 0.92, "GBP": 0.79, "JPY": 150.0,
	"CAD": 1.35, "AUD": 1.52, "CHF": 0.88, "CNY": 7.2,
}

type rateResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func (c *ExchangeClient) Rate(ctx context.Context, from, to string) (float64, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == to {
		return 1, nil
	}

	rate, err := c.fetchRate(ctx, from, to)
	if err == nil {
		return rate, nil
	}

	if rate, ok := staticRate(from, to); ok {
		return rate, nil
	}
	return 0, fmt.Errorf("no exchange rate for %s→%s: %w", from, to, err)
}

func (c *ExchangeClient) fetchRate(ctx context.Context, from, to string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v4/latest/"+from, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("exchange rate API error (%d)", resp.StatusCode)
	}

	var parsed rateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("failed to parse rate response: %w", err)
	}
	rate, ok := parsed.Rates[to]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("rate for %s not in response", to)
	}
	return rate, nil
}

func staticRate(from, to string) (float64, bool) {
	fromUSD, okFrom := fallbackUSDRates[from]
	toUSD, okTo := fallbackUSDRates[to]
	if !okFrom || !okTo || fromUSD == 0 {
		return 0, false
	}
	return toUSD / fromUSD, true
}

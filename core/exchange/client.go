package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client fetches exchange rates from a primary provider, falling back to a
// backup provider when the primary is unreachable or answers with an error.
type Client struct {
	primary string
	backup  string
	http    *http.Client
}

// NewClient creates an exchange-rate client from the configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 5
	}
	return &Client{
		primary: strings.TrimSuffix(cfg.PrimaryEndpoint, "/"),
		backup:  strings.TrimSuffix(cfg.BackupEndpoint, "/"),
		http:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// ratesResponse matches the shape both providers share.
type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Rate returns the multiplier converting one unit of from into to.
func (c *Client) Rate(ctx context.Context, from, to string) (float64, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return 1, nil
	}

	rates, err := c.fetch(ctx, c.primary, from)
	if err != nil && c.backup != "" {
		rates, err = c.fetch(ctx, c.backup, from)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve exchange rate for %s: %w", from, err)
	}

	rate, ok := rates[to]
	if !ok {
		return 0, fmt.Errorf("provider has no rate for %s", to)
	}
	return rate, nil
}

// Convert converts an amount between currencies.
func (c *Client) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	rate, err := c.Rate(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return amount * rate, nil
}

func (c *Client) fetch(ctx context.Context, endpoint, from string) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"/"+from, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("provider returned no rates")
	}
	return body.Rates, nil
}

// Package exchangerate reads the USD spot rate from a JSON endpoint.
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"negocio/internal/core/types"
	"negocio/internal/domain/catalogs/product"
)

// Config for the rate feed.
type Config struct {
	URL     string
	Timeout time.Duration
}

// Client implements product.RateFeed.
type Client struct {
	httpClient *resty.Client
	url        string
}

var _ product.RateFeed = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		httpClient: resty.New().SetTimeout(cfg.Timeout),
		url:        cfg.URL,
	}
}

// rateResponse accepts {"rate": n} and {"price": n}; numbers may be quoted.
type rateResponse struct {
	Rate  *json.Number `json:"rate"`
	Price *json.Number `json:"price"`
}

// CurrentRate returns product.ErrNoRate when the feed is not configured or answers without a value.
func (c *Client) CurrentRate(ctx context.Context) (types.Money, error) {
	if c.url == "" {
		return types.Zero(), product.ErrNoRate
	}

	var body rateResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetResult(&body).
		Get(c.url)
	if err != nil {
		return types.Zero(), fmt.Errorf("rate feed call: %w", err)
	}
	if resp.IsError() {
		return types.Zero(), fmt.Errorf("rate feed status %d", resp.StatusCode())
	}

	raw := body.Rate
	if raw == nil {
		raw = body.Price
	}
	if raw == nil {
		return types.Zero(), product.ErrNoRate
	}

	rate, err := decimal.NewFromString(raw.String())
	if err != nil {
		return types.Zero(), fmt.Errorf("parse rate %q: %w", raw.String(), err)
	}
	return rate, nil
}

// Package productapi fetches prepared product payloads from the
// comparison backend.
package productapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"nutrimatrix/internal/model"
)

var httpClient = &http.Client{
	Timeout: 60 * time.Second,
}

type Client struct {
	BaseURL string
	Cache   *Cache // optional
}

func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL}
}

// GetProductData fetches the prepared payload for a search key. The
// response is served from the cache when one is configured and warm.
// Failures are returned as a single error; there are no retries.
func (c *Client) GetProductData(ctx context.Context, key string) (*model.ProductData, error) {
	if c.Cache != nil {
		if data, ok := c.Cache.Get(ctx, key); ok {
			return data, nil
		}
	}

	endpoint := fmt.Sprintf("%s/get_product_data?key=%s", c.BaseURL, url.QueryEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend status %d for key %s", resp.StatusCode, key)
	}

	var data model.ProductData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode product data: %w", err)
	}
	Normalize(&data)

	if c.Cache != nil {
		c.Cache.Put(ctx, key, &data)
	}
	return &data, nil
}

// Normalize fills gaps the backend leaves in the payload. Offers
// without a server id get a generated one so group source-id sets stay
// meaningful.
func Normalize(data *model.ProductData) {
	for i := range data.Products {
		if data.Products[i].ID == "" {
			data.Products[i].ID = uuid.New().String()
		}
	}
}

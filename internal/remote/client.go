// Package remote fetches raw client records from the route API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"carteira/internal/core"
)

// Client talks to the route API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type portfolioRequest struct {
	SellerID string `json:"sellerId"`
}

// FetchPortfolio returns every client record assigned to the seller. Records
// arrive unvalidated; callers run them through core.ClassifyAll.
func (c *Client) FetchPortfolio(ctx context.Context, sellerID string) ([]core.ClientRecord, error) {
	body, err := json.Marshal(portfolioRequest{SellerID: sellerID})
	if err != nil {
		return nil, fmt.Errorf("encode portfolio request: %w", err)
	}

	url := c.baseURL + "/api/portfolio"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build portfolio request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch portfolio for seller %s: %w", sellerID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("route API returned status %d: %s", resp.StatusCode, snippet)
	}

	var records []core.ClientRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode portfolio response: %w", err)
	}

	slog.DebugContext(ctx, "Portfolio fetched",
		"seller_id", sellerID,
		"records", len(records))

	return records, nil
}

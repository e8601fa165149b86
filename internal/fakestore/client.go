// Package fakestore pulls the initial catalog from the public product API the
// storefront is seeded from. The API is read-only from this system's point of
// view and consulted at most once: a non-empty local catalog short-circuits the
// fetch, and a failed fetch is logged and swallowed with no retry.
package fakestore

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"eshop/internal/domain"
)

type apiProduct struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Price       float64     `json:"price"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
}

type Client struct {
	URL  string
	HTTP *http.Client
}

func New(url string) *Client {
	return &Client{URL: url, HTTP: &http.Client{Timeout: 15 * time.Second}}
}

// Fetch reads the catalog endpoint and normalizes each record into the
// canonical product shape: sale price defaults to price, stock is a random
// 10-50, status Active, published.
func (c *Client) Fetch(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog api returned %s", resp.Status)
	}
	var raw []apiProduct
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	now := time.Now().Format(time.RFC3339)
	out := make([]domain.Product, 0, len(raw))
	for _, ap := range raw {
		id := ap.ID.String()
		if id == "" {
			id = fmt.Sprintf("P%d", time.Now().UnixMilli())
		}
		title := ap.Title
		if title == "" {
			title = "Untitled Product"
		}
		category := ap.Category
		if category == "" {
			category = "Uncategorized"
		}
		out = append(out, domain.Product{
			ID:          id,
			Title:       title,
			Category:    category,
			Price:       ap.Price,
			SalePrice:   ap.Price,
			Stock:       10 + rand.Intn(41),
			Status:      "Active",
			Published:   true,
			Image:       ap.Image,
			Description: ap.Description,
			DateAdded:   now,
		})
	}
	return out, nil
}

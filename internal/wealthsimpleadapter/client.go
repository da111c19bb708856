package wealthsimpleadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Activity is one raw entry of the Wealthsimple credit feed.
type Activity struct {
	Type        string `json:"type"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// Client pulls the raw activity feed from the online source.
type Client interface {
	Transactions() ([]Activity, error)
}

// HTTPClient fetches the activity feed from a configured URL.
type HTTPClient struct {
	url  string
	http *http.Client
}

// NewHTTPClient creates a feed client for the given URL.
func NewHTTPClient(url string) *HTTPClient {
	return &HTTPClient{
		url:  url,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Transactions fetches and decodes the activity feed.
func (c *HTTPClient) Transactions() ([]Activity, error) {
	resp, err := c.http.Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("error fetching transactions: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transaction feed returned status %d", resp.StatusCode)
	}

	var activities []Activity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("error decoding transaction feed: %w", err)
	}
	return activities, nil
}

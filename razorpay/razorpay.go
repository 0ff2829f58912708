package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Client is a thin wrapper around the Razorpay orders and subscriptions API.
type Client struct {
	KeyID      string
	KeySecret  string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		KeyID:      os.Getenv("RAZORPAY_KEY_ID"),
		KeySecret:  os.Getenv("RAZORPAY_SECRET"),
		BaseURL:    "https://api.razorpay.com/v1",
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Order is the gateway's view of a payment attempt.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Subscription mirrors the gateway subscription object.
type Subscription struct {
	ID     string `json:"id"`
	PlanID string `json:"plan_id"`
	Status string `json:"status"`
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// CreateOrder creates a remote order for the given minor-unit amount.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	payload := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	var order Order
	if err := c.post(ctx, "/orders", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateSubscription starts a recurring plan subscription.
func (c *Client) CreateSubscription(ctx context.Context, planID string, totalCount int) (*Subscription, error) {
	payload := map[string]interface{}{
		"plan_id":         planID,
		"customer_notify": 1,
		"total_count":     totalCount,
	}
	var sub Subscription
	if err := c.post(ctx, "/subscriptions", payload, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Package api is the HTTP client for the tasterover backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tasterover/internal/logging"
)

const (
	pathWeather   = "/api/weather"
	pathNutrition = "/api/nutrition"
	pathMenu      = "/api/mcdonalds/menu"
	pathHealth    = "/api/health"

	// slowRequest marks backend calls worth a warning in the api log.
	slowRequest = 10 * time.Second
)

// domainPayload is implemented by every response body that may carry a
// top-level "error" field.
type domainPayload interface {
	domainError() string
}

// Client talks to the backend. It holds no state beyond its configuration
// and is safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for baseURL. A zero timeout means requests are
// bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the backend root this client was built for.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Weather looks up the current conditions and forecast for postcode.
func (c *Client) Weather(ctx context.Context, postcode string) (WeatherResult, error) {
	var out weatherResponse
	if err := c.do(ctx, "weather", http.MethodPost, pathWeather, weatherRequest{Postcode: postcode}, &out); err != nil {
		return WeatherResult{}, err
	}
	return out.WeatherResult, nil
}

// Nutrition estimates calories for the given ingredient lines.
func (c *Client) Nutrition(ctx context.Context, ingredients []string) (NutritionResult, error) {
	var out nutritionResponse
	if err := c.do(ctx, "nutrition", http.MethodPost, pathNutrition, nutritionRequest{Ingredients: ingredients}, &out); err != nil {
		return NutritionResult{}, err
	}
	return out.NutritionResult, nil
}

// Menu fetches the product list. Free-text fields are reduced to plain text
// and every item gets a stable Key.
func (c *Client) Menu(ctx context.Context) ([]MenuItem, error) {
	var out menuResponse
	if err := c.do(ctx, "menu", http.MethodGet, pathMenu, nil, &out); err != nil {
		return nil, err
	}
	items := out.Products
	if items == nil {
		items = []MenuItem{}
	}
	for i := range items {
		items[i].Description = PlainText(items[i].Description)
		items[i].Ingredients = PlainText(items[i].Ingredients)
		items[i].Allergens = PlainText(items[i].Allergens)
	}
	AssignKeys(items)
	return items, nil
}

// Health reports whether the backend answers its health probe.
func (c *Client) Health(ctx context.Context) (bool, error) {
	var out healthResponse
	if err := c.do(ctx, "health", http.MethodGet, pathHealth, nil, &out); err != nil {
		return false, err
	}
	return out.OK, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, in any, out domainPayload) error {
	log := logging.Get(logging.CategoryAPI).With("op", op)
	timer := logging.StartTimer(logging.CategoryAPI, method+" "+path)

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn("%s %s failed after %v: %v", method, path, timer.Stop(), err)
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Warn("%s %s returned status %d", method, path, resp.StatusCode)
		return &TransportError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Warn("%s %s: undecodable body: %v", method, path, err)
		return &TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if msg := out.domainError(); msg != "" {
		log.Info("%s %s reported error: %s", method, path, msg)
		return &DomainError{Op: op, Message: msg}
	}

	timer.StopWithThreshold(slowRequest)
	return nil
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second)
}

func TestClientWeather(t *testing.T) {
	var got weatherRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, pathWeather, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{
			"postcode": "SW1A1AA",
			"current": {"temperature": 12, "condition": "mainly rain"},
			"forecast": [
				{"date": "2026-10-17", "avg_temp": 11.5, "mainly": "mainly rain"},
				{"date": "2026-10-18", "avg_temp": 13, "mainly": "mainly sun"}
			]
		}`))
	})

	res, err := c.Weather(context.Background(), "SW1A1AA")
	require.NoError(t, err)
	assert.Equal(t, "SW1A1AA", got.Postcode)

	want := WeatherResult{
		Postcode: "SW1A1AA",
		Current:  Observation{Temperature: 12, Condition: "mainly rain"},
		Forecast: []ForecastDay{
			{Date: "2026-10-17", AvgTemp: 11.5, Mainly: "mainly rain"},
			{Date: "2026-10-18", AvgTemp: 13, Mainly: "mainly sun"},
		},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("weather mismatch (-want +got):\n%s", diff)
	}
}

func TestClientNutrition(t *testing.T) {
	var got nutritionRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pathNutrition, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"items":[{"ingredient":"2 eggs","assumed_amount":"2 large","calories_kcal":156,"notes":""}],"total_calories_kcal":156}`))
	})

	res, err := c.Nutrition(context.Background(), []string{"2 eggs"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2 eggs"}, got.Ingredients)
	assert.Equal(t, 156, res.TotalCaloriesKcal)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "2 large", res.Items[0].AssumedAmount)
}

func TestClientMenu(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, pathMenu, r.URL.Path)
		_, _ = w.Write([]byte(`{"products":[
			{"name":"Big Mac","description":"<p>Two patties &amp; sauce</p>","price":"£4.99","nutrition":{"energy_kcal":493,"protein":26}},
			{"name":"Fries","description":"Golden","price":""}
		],"total":2}`))
	})

	items, err := c.Menu(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Two patties & sauce", items[0].Description)
	assert.Equal(t, 493.0, items[0].Nutrition.EnergyKcal)
	assert.Equal(t, "see menu", items[1].DisplayPrice())
	assert.NotEqual(t, items[0].Key, items[1].Key)

	// Keys are stable across fetches.
	again, err := c.Menu(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(items, again, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("menu not stable (-first +second):\n%s", diff)
	}
}

func TestClientMenuNullProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total":0}`))
	})
	items, err := c.Menu(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestClientDomainError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"rate_limit exceeded","products":[],"total":0}`))
	})

	_, err := c.Menu(context.Background())
	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "menu", de.Op)
	assert.Equal(t, "rate_limit exceeded", err.Error())
}

func TestClientStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := c.Weather(context.Background(), "SW1A1AA")
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusBadGateway, te.Status)
	assert.Equal(t, "HTTP 502", err.Error())
}

func TestClientUndecodableBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})

	_, err := c.Nutrition(context.Background(), []string{"x"})
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Zero(t, te.Status)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second)
	ok, err := c.Health(context.Background())
	assert.False(t, ok)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Zero(t, te.Status)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestClientHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pathHealth, r.URL.Path)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	ok, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewClientTrimsBaseURL(t *testing.T) {
	c := NewClient("http://localhost:8000///", 0)
	assert.Equal(t, "http://localhost:8000", c.BaseURL())
}

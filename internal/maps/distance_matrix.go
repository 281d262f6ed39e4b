package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
)

var ErrNoAPIKey = errors.New("maps api key not configured")

// Route is a driving distance/duration answer from the provider.
type Route struct {
	DistanceKm  float64
	DurationMin float64
}

// Client talks to a Google-compatible Distance Matrix endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type matrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"` // meters
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"` // seconds
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// DrivingRoute asks for the driving distance between two points.
func (c *Client) DrivingRoute(ctx context.Context, from, to domain.Coordinates) (Route, error) {
	if c == nil || c.APIKey == "" {
		return Route{}, ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("origins", fmt.Sprintf("%f,%f", from.Lat, from.Lng))
	q.Set("destinations", fmt.Sprintf("%f,%f", to.Lat, to.Lng))
	q.Set("mode", "driving")
	q.Set("units", "metric")
	q.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/distancematrix/json?"+q.Encode(), nil)
	if err != nil {
		return Route{}, fmt.Errorf("build request: %w", err)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return Route{}, fmt.Errorf("distance matrix request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Route{}, fmt.Errorf("distance matrix status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Route{}, fmt.Errorf("decode distance matrix: %w", err)
	}
	if out.Status != "OK" {
		return Route{}, fmt.Errorf("distance matrix api status %s: %s", out.Status, out.ErrorMessage)
	}
	if len(out.Rows) == 0 || len(out.Rows[0].Elements) == 0 {
		return Route{}, errors.New("distance matrix returned no elements")
	}
	el := out.Rows[0].Elements[0]
	if el.Status != "OK" {
		return Route{}, fmt.Errorf("distance matrix element status %s", el.Status)
	}

	return Route{
		DistanceKm:  el.Distance.Value / 1000,
		DurationMin: el.Duration.Value / 60,
	}, nil
}

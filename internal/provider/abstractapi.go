// Package provider wraps the AbstractAPI phone validation service, the one
// external source of real location data.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"phonetrace/models"
	"time"
)

// abstractAPIResponse mirrors the phone validation response schema.
type abstractAPIResponse struct {
	Phone   string `json:"phone"`
	Valid   bool   `json:"valid"`
	Country struct {
		Name   string `json:"name"`
		Code   string `json:"code"`
		Prefix string `json:"prefix"`
	} `json:"country"`
	Location struct {
		City      string   `json:"city"`
		Region    string   `json:"region"`
		Timezone  string   `json:"timezone"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"location"`
	Carrier struct {
		Name string `json:"name"`
	} `json:"carrier"`
	Type string `json:"type"`
}

// Client issues lookups against AbstractAPI. A missing credential means the
// client never attempts network I/O.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a provider client for the given credential and endpoint
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// IsConfigured reports whether an API key was supplied
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Lookup fetches location data for a phone number and maps it into the
// internal record shape. It returns nil without error when the provider has
// no data for the number: missing credential or an invalid-number response.
// Transport failures and non-2xx statuses come back as errors so the caller
// can log them, but they carry no record either way. One request per call,
// no retries.
func (c *Client) Lookup(ctx context.Context, phoneNumber string) (*models.PhoneLocation, error) {
	if !c.IsConfigured() {
		return nil, nil
	}

	reqURL := fmt.Sprintf("%s?api_key=%s&phone=%s", c.baseURL,
		url.QueryEscape(c.apiKey), url.QueryEscape(phoneNumber))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider responded with status: %d", resp.StatusCode)
	}

	var data abstractAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	// An invalid number is not an error, just the absence of data.
	if !data.Valid {
		return nil, nil
	}

	location := &models.PhoneLocation{
		PhoneNumber: phoneNumber,
		LookupTime:  time.Now().UTC().Format(time.RFC3339),
	}
	if data.Location.City != "" {
		city := data.Location.City
		location.City = &city
	}
	if data.Location.Region != "" {
		region := data.Location.Region
		location.Region = &region
	}
	if data.Country.Name != "" {
		country := data.Country.Name
		location.Country = &country
	}
	if data.Carrier.Name != "" {
		carrier := data.Carrier.Name
		location.Carrier = &carrier
	}
	if data.Location.Timezone != "" {
		timezone := data.Location.Timezone
		location.Timezone = &timezone
	}
	// Coordinates are kept only as a pair
	if data.Location.Latitude != nil && data.Location.Longitude != nil {
		location.Latitude = data.Location.Latitude
		location.Longitude = data.Location.Longitude
	}
	location.FormattedAddress = models.FormatAddress(location.City, location.Region, location.Country)

	return location, nil
}

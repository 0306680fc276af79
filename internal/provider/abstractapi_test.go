package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_MapsProviderResponse(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "+442079460958", r.URL.Query().Get("phone"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"phone": "+442079460958",
			"valid": true,
			"country": {"name": "United Kingdom", "code": "GB", "prefix": "+44"},
			"location": {"city": "London", "region": "England", "timezone": "Europe/London", "latitude": 51.5074, "longitude": -0.1278},
			"carrier": {"name": "Vodafone"},
			"type": "mobile"
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	location, err := client.Lookup(context.Background(), "+442079460958")
	require.NoError(t, err)
	require.NotNil(t, location)

	assert.Equal(t, "+442079460958", location.PhoneNumber)
	assert.Equal(t, "London", *location.City)
	assert.Equal(t, "England", *location.Region)
	assert.Equal(t, "United Kingdom", *location.Country)
	assert.Equal(t, "Vodafone", *location.Carrier)
	assert.Equal(t, "Europe/London", *location.Timezone)
	require.True(t, location.HasCoordinates())
	assert.Equal(t, 51.5074, *location.Latitude)
	assert.Equal(t, -0.1278, *location.Longitude)
	require.NotNil(t, location.FormattedAddress)
	assert.Equal(t, "London, England, United Kingdom", *location.FormattedAddress)
	assert.NotEmpty(t, location.LookupTime)
	assert.Equal(t, 1, requests)
}

func TestLookup_PartialResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"phone": "+15551234567",
			"valid": true,
			"country": {"name": "United States", "code": "US", "prefix": "+1"},
			"location": {"latitude": 40.7128},
			"carrier": {}
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	location, err := client.Lookup(context.Background(), "+15551234567")
	require.NoError(t, err)
	require.NotNil(t, location)

	assert.Nil(t, location.City)
	assert.Nil(t, location.Carrier)
	// A lone latitude must not produce a half-filled coordinate pair
	assert.Nil(t, location.Latitude)
	assert.Nil(t, location.Longitude)
	require.NotNil(t, location.FormattedAddress)
	assert.Equal(t, "United States", *location.FormattedAddress)
}

func TestLookup_InvalidNumberReturnsNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"phone": "123", "valid": false}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	location, err := client.Lookup(context.Background(), "123")
	assert.NoError(t, err)
	assert.Nil(t, location)
}

func TestLookup_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	location, err := client.Lookup(context.Background(), "+442079460958")
	assert.Error(t, err)
	assert.Nil(t, location)
}

func TestLookup_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)
	location, err := client.Lookup(context.Background(), "+442079460958")
	assert.Error(t, err)
	assert.Nil(t, location)
}

func TestLookup_WithoutCredentialSkipsNetwork(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient("", server.URL)
	assert.False(t, client.IsConfigured())

	location, err := client.Lookup(context.Background(), "+442079460958")
	assert.NoError(t, err)
	assert.Nil(t, location)
	assert.Equal(t, 0, requests)
}

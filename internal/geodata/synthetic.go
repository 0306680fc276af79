// Package geodata generates plausible location data for a phone number when
// no real lookup source is available. A record is a pure function of the
// input string (aside from its lookup timestamp), so repeated lookups for the
// same number always agree.
package geodata

import (
	"math"
	"phonetrace/models"
	"strings"
	"time"
)

type regionInfo struct {
	country  string
	city     string
	region   string
	carrier  string
	timezone string
	lat      float64
	lon      float64
	jitter   float64
}

// Keyed by the two characters following a leading "+". Numbers without a
// match land on the wider-jitter New York entry.
var regionsByCode = map[string]regionInfo{
	"44": {"United Kingdom", "London", "England", "British Telecom", "UTC+0", 51.5074, -0.1278, 0.1},
	"49": {"Germany", "Berlin", "Berlin", "Deutsche Telekom", "UTC+1", 52.5200, 13.4050, 0.1},
	"33": {"France", "Paris", "Île-de-France", "Orange", "UTC+1", 48.8566, 2.3522, 0.1},
	"81": {"Japan", "Tokyo", "Kanto", "NTT Docomo", "UTC+9", 35.6762, 139.6503, 0.1},
	"86": {"China", "Beijing", "Beijing", "China Mobile", "UTC+8", 39.9042, 116.4074, 0.1},
	"91": {"India", "Mumbai", "Maharashtra", "Jio", "UTC+5:30", 19.0760, 72.8777, 0.1},
	"62": {"Indonesia", "Jakarta", "Java", "Telkomsel", "UTC+7", -6.2088, 106.8456, 0.1},
}

var defaultRegion = regionInfo{"United States", "New York", "NY", "Sample Carrier", "UTC-5", 40.7128, -74.0060, 0.3}

// Generate builds a synthetic location record for the given phone number.
// Synthetic records carry no formatted address, unlike provider-derived ones.
func Generate(phoneNumber string) *models.PhoneLocation {
	seed := 0
	for _, c := range phoneNumber {
		seed += int(c)
	}

	// One pseudo-random draw per number, shared by both coordinate offsets.
	// Latitude and longitude jitter are therefore correlated; this mirrors
	// the behavior the rest of the system was built against.
	x := math.Sin(float64(seed)) * 10000
	draw := x - math.Floor(x)
	randomize := func(min, max float64) float64 {
		return min + draw*(max-min)
	}

	code := "1"
	if strings.HasPrefix(phoneNumber, "+") {
		code = phoneNumber[1:]
		if len(code) > 2 {
			code = code[:2]
		}
	}

	info, ok := regionsByCode[code]
	if !ok {
		info = defaultRegion
	}

	latitude := info.lat + randomize(-info.jitter, info.jitter)
	longitude := info.lon + randomize(-info.jitter, info.jitter)

	city := info.city
	region := info.region
	country := info.country
	carrier := info.carrier
	timezone := info.timezone

	return &models.PhoneLocation{
		PhoneNumber: phoneNumber,
		City:        &city,
		Region:      &region,
		Country:     &country,
		Carrier:     &carrier,
		Timezone:    &timezone,
		Latitude:    &latitude,
		Longitude:   &longitude,
		LookupTime:  time.Now().UTC().Format(time.RFC3339),
	}
}

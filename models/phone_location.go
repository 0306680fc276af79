package models

import (
	"strings"
)

// PhoneLocation is the resolved location record for a phone number. The phone
// number is stored exactly as submitted and is the identity key for caching;
// no normalization happens anywhere, so "+1-555-123" and "15551234567" are
// distinct records. Optional fields are nil when unknown. Records are written
// once and never updated.
type PhoneLocation struct {
	ID               string   `db:"id" json:"id,omitempty" bson:"_id,omitempty"`
	PhoneNumber      string   `db:"phone_number" json:"phoneNumber" bson:"phone_number"`
	City             *string  `db:"city" json:"city,omitempty" bson:"city,omitempty"`
	Region           *string  `db:"region" json:"region,omitempty" bson:"region,omitempty"`
	Country          *string  `db:"country" json:"country,omitempty" bson:"country,omitempty"`
	Carrier          *string  `db:"carrier" json:"carrier,omitempty" bson:"carrier,omitempty"`
	Timezone         *string  `db:"timezone" json:"timezone,omitempty" bson:"timezone,omitempty"`
	Latitude         *float64 `db:"latitude" json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude        *float64 `db:"longitude" json:"longitude,omitempty" bson:"longitude,omitempty"`
	FormattedAddress *string  `db:"formatted_address" json:"formattedAddress,omitempty" bson:"formatted_address,omitempty"`
	LookupTime       string   `db:"lookup_time" json:"lookupTime" bson:"lookup_time"`
}

// HasCoordinates reports whether the record carries a usable coordinate pair.
// Latitude and longitude are always both present or both absent.
func (p *PhoneLocation) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// FormatAddress joins the present city, region and country with ", " in that
// order. Returns nil when no component is present.
func FormatAddress(city, region, country *string) *string {
	var parts []string
	for _, part := range []*string{city, region, country} {
		if part != nil && *part != "" {
			parts = append(parts, *part)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	address := strings.Join(parts, ", ")
	return &address
}

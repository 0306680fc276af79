package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"phonetrace/models"

	"github.com/mattn/go-sqlite3"
)

// SQLiteLocationRepository implements the LocationRepository interface for SQLite
type SQLiteLocationRepository struct {
	db *sql.DB
}

// NewSQLiteLocationRepository creates a new SQLiteLocationRepository
func NewSQLiteLocationRepository(db *sql.DB) *SQLiteLocationRepository {
	return &SQLiteLocationRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteLocationRepository) Close() error {
	return r.db.Close()
}

// FindByPhoneNumber finds a stored location by the exact phone number string
func (r *SQLiteLocationRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*models.PhoneLocation, error) {
	query := `
		SELECT id, phone_number, city, region, country, carrier, timezone,
		       latitude, longitude, formatted_address, lookup_time
		FROM phone_locations
		WHERE phone_number = ?
	`
	row := r.db.QueryRowContext(ctx, query, phoneNumber)

	var location models.PhoneLocation
	var city, region, country, carrier, timezone, formattedAddress sql.NullString
	var latitude, longitude sql.NullFloat64

	err := row.Scan(&location.ID, &location.PhoneNumber, &city, &region, &country,
		&carrier, &timezone, &latitude, &longitude, &formattedAddress, &location.LookupTime)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning phone location: %w", err)
	}

	if city.Valid {
		location.City = &city.String
	}
	if region.Valid {
		location.Region = &region.String
	}
	if country.Valid {
		location.Country = &country.String
	}
	if carrier.Valid {
		location.Carrier = &carrier.String
	}
	if timezone.Valid {
		location.Timezone = &timezone.String
	}
	if latitude.Valid && longitude.Valid {
		location.Latitude = &latitude.Float64
		location.Longitude = &longitude.Float64
	}
	if formattedAddress.Valid {
		location.FormattedAddress = &formattedAddress.String
	}

	return &location, nil
}

// Create inserts a new location record. Inserting a phone number that already
// has a record returns ErrDuplicate; callers are expected to re-read instead.
func (r *SQLiteLocationRepository) Create(ctx context.Context, location *models.PhoneLocation) (*models.PhoneLocation, error) {
	if location.ID == "" {
		location.ID = GenerateID()
	}

	query := `
		INSERT INTO phone_locations (
			id, phone_number, city, region, country, carrier, timezone,
			latitude, longitude, formatted_address, lookup_time
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		location.ID, location.PhoneNumber, location.City, location.Region,
		location.Country, location.Carrier, location.Timezone,
		location.Latitude, location.Longitude, location.FormattedAddress,
		location.LookupTime,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create phone location: %w", err)
	}

	return location, nil
}

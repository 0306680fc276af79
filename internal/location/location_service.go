package location

import (
	"context"
	"errors"
	"fmt"
	"log"
	"phonetrace/db"
	"phonetrace/internal/geodata"
	"phonetrace/models"
)

// Provider supplies real location data for a phone number. Implementations
// return a nil record without error when they have nothing for the number.
type Provider interface {
	IsConfigured() bool
	Lookup(ctx context.Context, phoneNumber string) (*models.PhoneLocation, error)
}

// LocationService resolves phone numbers to location records through a
// layered strategy: the persisted cache first, then the external provider,
// then the synthetic generator. The first source that produces a record wins.
type LocationService struct {
	repo      db.LocationRepository
	provider  Provider
	dbManager *db.DBManager
}

func NewLocationService(repo db.LocationRepository, provider Provider, dbManager *db.DBManager) *LocationService {
	return &LocationService{
		repo:      repo,
		provider:  provider,
		dbManager: dbManager,
	}
}

// Resolve produces the location record for a phone number. A cache hit is
// returned unchanged with no side effects; a miss writes exactly one record.
// Provider failures never surface to the caller, they only shift resolution
// to the next strategy. The only caller-visible failure is db.ErrNotFound,
// meaning nothing could be resolved at all.
func (s *LocationService) Resolve(ctx context.Context, phoneNumber string) (*models.PhoneLocation, error) {
	existing, err := s.repo.FindByPhoneNumber(ctx, phoneNumber)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to read location cache: %w", err)
	}

	record, err := s.provider.Lookup(ctx, phoneNumber)
	if err != nil {
		log.Printf("Provider lookup failed for %s: %v", phoneNumber, err)
		record = nil
	}
	if record == nil {
		log.Println("Could not fetch phone data from provider. Using fallback data generation.")
		record = geodata.Generate(phoneNumber)
	}
	if record == nil {
		return nil, db.ErrNotFound
	}

	return s.save(ctx, record)
}

func (s *LocationService) save(ctx context.Context, record *models.PhoneLocation) (*models.PhoneLocation, error) {
	saved, err := s.dbManager.SaveLocation(s.repo, ctx, record)
	if errors.Is(err, db.ErrDuplicate) {
		// Another request resolved this number first; its record wins.
		return s.repo.FindByPhoneNumber(ctx, record.PhoneNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to persist location: %w", err)
	}
	return saved, nil
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"phonetrace/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Repository defines a common interface for all repositories
type Repository interface {
	Close() error
}

// LocationRepository defines the interface for phone location operations.
// The store is a write-once ledger of lookups: there is no update or delete,
// and a record never changes after Create.
type LocationRepository interface {
	Repository
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*models.PhoneLocation, error)
	Create(ctx context.Context, location *models.PhoneLocation) (*models.PhoneLocation, error)
}

// RepositoryFactory creates repositories based on the database type
type RepositoryFactory struct {
	SQLiteDB    *sql.DB
	MongoClient *mongo.Client
	DBName      string
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(sqliteDB *sql.DB, mongoClient *mongo.Client, dbName string) *RepositoryFactory {
	return &RepositoryFactory{
		SQLiteDB:    sqliteDB,
		MongoClient: mongoClient,
		DBName:      dbName,
	}
}

// NewLocationRepository creates a new phone location repository
func (f *RepositoryFactory) NewLocationRepository() LocationRepository {
	if f.SQLiteDB != nil {
		return NewSQLiteLocationRepository(f.SQLiteDB)
	}
	return NewMongoLocationRepository(f.MongoClient, f.DBName, "phone_locations")
}

// GenerateID generates a unique ID for a record
func GenerateID() string {
	return uuid.New().String()
}

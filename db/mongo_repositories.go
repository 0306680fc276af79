package db

import (
	"context"
	"fmt"
	"log"
	"phonetrace/models"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLocationRepository implements the LocationRepository interface for MongoDB
type MongoLocationRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

// NewMongoLocationRepository creates a new MongoLocationRepository
func NewMongoLocationRepository(client *mongo.Client, database, collection string) *MongoLocationRepository {
	r := &MongoLocationRepository{
		client:     client,
		database:   database,
		collection: collection,
	}

	// A unique index on phone_number gives the same insert-once semantics as
	// the SQLite unique constraint.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := r.coll().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("Warning: failed to ensure phone_number index: %v", err)
	}

	return r
}

func (r *MongoLocationRepository) coll() *mongo.Collection {
	return r.client.Database(r.database).Collection(r.collection)
}

// Close closes the MongoDB connection
func (r *MongoLocationRepository) Close() error {
	return r.client.Disconnect(context.Background())
}

// FindByPhoneNumber finds a stored location by the exact phone number string
func (r *MongoLocationRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*models.PhoneLocation, error) {
	var location models.PhoneLocation
	err := r.coll().FindOne(ctx, bson.M{"phone_number": phoneNumber}).Decode(&location)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding phone location: %w", err)
	}

	return &location, nil
}

// Create inserts a new location record. Inserting a phone number that already
// has a record returns ErrDuplicate; callers are expected to re-read instead.
func (r *MongoLocationRepository) Create(ctx context.Context, location *models.PhoneLocation) (*models.PhoneLocation, error) {
	if location.ID == "" {
		location.ID = GenerateID()
	}

	_, err := r.coll().InsertOne(ctx, location)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create phone location: %w", err)
	}

	return location, nil
}

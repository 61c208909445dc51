package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"carebook/database"
	"carebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("bookings")
	repo := &MongoBookingRepo{client: database.MongoClient, coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "start", Value: 1}}},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "start", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// InsertSeries writes the whole series inside a transaction where the
// deployment allows it. Standalone Mongo cannot open transactions; there the
// series degrades to an ordered InsertMany and any partial write is reported
// to the caller through the insert count.
func (r *MongoBookingRepo) InsertSeries(ctx context.Context, bookings []models.Booking) (int, error) {
	docs := make([]interface{}, len(bookings))
	for i := range bookings {
		docs[i] = bookings[i]
	}

	session, err := r.client.StartSession()
	if err != nil {
		return r.insertOrdered(ctx, docs)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		_, insertErr := r.coll.InsertMany(sc, docs)
		return nil, insertErr
	})
	if err == nil {
		return len(bookings), nil
	}
	if isTransactionUnsupported(err) {
		return r.insertOrdered(ctx, docs)
	}
	return 0, fmt.Errorf("booking series transaction failed: %w", err)
}

func (r *MongoBookingRepo) insertOrdered(ctx context.Context, docs []interface{}) (int, error) {
	res, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	inserted := 0
	if res != nil {
		inserted = len(res.InsertedIDs)
	}
	if err != nil {
		return inserted, fmt.Errorf("ordered booking insert stopped after %d of %d: %w", inserted, len(docs), err)
	}
	return inserted, nil
}

func isTransactionUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Name == "IllegalOperation" {
		return true
	}
	return strings.Contains(err.Error(), "Transaction numbers are only allowed")
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) ListForClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"client_id": clientID})
}

func (r *MongoBookingRepo) ListForProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"provider_id": providerID})
}

func (r *MongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

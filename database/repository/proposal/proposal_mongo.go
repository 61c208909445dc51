package proposalRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carebook/database"
	"carebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProposalRepo implements ProposalRepository using MongoDB.
type MongoProposalRepo struct {
	coll *mongo.Collection
}

// NewMongoProposalRepo creates a new instance of ProposalRepository using MongoDB.
func NewMongoProposalRepo() ProposalRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("proposals")
	repo := &MongoProposalRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoProposalRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "proposer_id", Value: 1}, {Key: "recipient_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoProposalRepo) Insert(ctx context.Context, p *models.Proposal) error {
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to insert proposal %s: %w", p.ID, err)
	}
	return nil
}

func (r *MongoProposalRepo) GetByID(ctx context.Context, id string) (*models.Proposal, error) {
	var p models.Proposal
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch proposal %s: %w", id, err)
	}
	return &p, nil
}

// RespondByRecipient is the CAS guard for accept/reject: the update only
// matches a document that is still pending and owned by recipientID, so two
// racing responses can never both succeed.
func (r *MongoProposalRepo) RespondByRecipient(ctx context.Context, id, recipientID string, to models.ProposalStatus, respondedAt time.Time) (*models.Proposal, error) {
	filter := bson.M{
		"id":           id,
		"status":       models.ProposalPending,
		"recipient_id": recipientID,
	}
	update := bson.M{"$set": bson.M{
		"status":       to,
		"responded_at": respondedAt,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Proposal
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotMatched
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update proposal %s: %w", id, err)
	}
	return &p, nil
}

func (r *MongoProposalRepo) MarkBooked(ctx context.Context, id, bookingID string, bookedAt time.Time) (*models.Proposal, error) {
	filter := bson.M{
		"id":     id,
		"status": models.ProposalAccepted,
	}
	update := bson.M{"$set": bson.M{
		"status":            models.ProposalBooked,
		"booked_at":         bookedAt,
		"booked_booking_id": bookingID,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Proposal
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotMatched
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark proposal %s booked: %w", id, err)
	}
	return &p, nil
}

func (r *MongoProposalRepo) ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"status":     models.ProposalPending,
		"created_at": bson.M{"$lt": cutoff},
	}
	update := bson.M{"$set": bson.M{"status": models.ProposalExpired}}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale proposals: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *MongoProposalRepo) ListBetween(ctx context.Context, partyA, partyB string) ([]models.Proposal, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"proposer_id": partyA, "recipient_id": partyB},
		bson.M{"proposer_id": partyB, "recipient_id": partyA},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer cursor.Close(ctx)

	var proposals []models.Proposal
	if err := cursor.All(ctx, &proposals); err != nil {
		return nil, fmt.Errorf("failed to decode proposals: %w", err)
	}
	return proposals, nil
}

func (r *MongoProposalRepo) CountPendingBetween(ctx context.Context, partyA, partyB string) (int64, error) {
	filter := bson.M{
		"status": models.ProposalPending,
		"$or": bson.A{
			bson.M{"proposer_id": partyA, "recipient_id": partyB},
			bson.M{"proposer_id": partyB, "recipient_id": partyA},
		},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending proposals: %w", err)
	}
	return count, nil
}

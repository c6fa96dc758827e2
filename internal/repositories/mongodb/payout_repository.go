package mongodb

import (
	"context"
	"fmt"
	"time"

	"motora/internal/models"
	"motora/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrStatusConflict is returned when a status transition races with a
// concurrent change and the expected current status no longer matches.
var ErrStatusConflict = fmt.Errorf("request status changed concurrently")

type payoutRepository struct {
	collection *mongo.Collection
}

func NewPayoutRepository(db *mongo.Database) interfaces.PayoutRepository {
	return &payoutRepository{
		collection: db.Collection("payout_requests"),
	}
}

func (r *payoutRepository) Create(ctx context.Context, request *models.PayoutRequest) error {
	request.ID = primitive.NewObjectID()
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()
	if request.Status == "" {
		request.Status = models.PayoutStatusPending
	}

	if _, err := r.collection.InsertOne(ctx, request); err != nil {
		return fmt.Errorf("failed to create payout request: %w", err)
	}

	return nil
}

func (r *payoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PayoutRequest, error) {
	var request models.PayoutRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("payout request not found")
		}
		return nil, fmt.Errorf("failed to get payout request: %w", err)
	}

	return &request, nil
}

func (r *payoutRepository) ListByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.PayoutRequest, error) {
	return r.list(ctx, bson.M{"driver_id": driverID})
}

func (r *payoutRepository) ListByStatus(ctx context.Context, status models.PayoutStatus) ([]*models.PayoutRequest, error) {
	return r.list(ctx, bson.M{"status": status})
}

func (r *payoutRepository) list(ctx context.Context, filter bson.M) ([]*models.PayoutRequest, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list payout requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*models.PayoutRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode payout requests: %w", err)
	}

	return requests, nil
}

// UpdateStatus filters on the expected current status, so a transition
// that lost a race matches zero documents instead of overwriting a
// terminal state.
func (r *payoutRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.PayoutStatus, updates map[string]interface{}) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("invalid payout transition %s -> %s", from, to)
	}

	set := bson.M{
		"status":     to,
		"updated_at": time.Now(),
	}
	for k, v := range updates {
		set[k] = v
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("failed to update payout request: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrStatusConflict
	}

	return nil
}

func (r *payoutRepository) PaidAmounts(ctx context.Context, driverID primitive.ObjectID) ([]float64, error) {
	return r.amounts(ctx, bson.M{
		"driver_id": driverID,
		"status":    models.PayoutStatusPaid,
	})
}

func (r *payoutRepository) ReservedAmounts(ctx context.Context, driverID primitive.ObjectID) ([]float64, error) {
	return r.amounts(ctx, bson.M{
		"driver_id": driverID,
		"status":    bson.M{"$in": []models.PayoutStatus{models.PayoutStatusPending, models.PayoutStatusApproved}},
	})
}

func (r *payoutRepository) amounts(ctx context.Context, filter bson.M) ([]float64, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetProjection(bson.M{"amount": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to query payout amounts: %w", err)
	}
	defer cursor.Close(ctx)

	var amounts []float64
	for cursor.Next(ctx) {
		var doc struct {
			Amount float64 `bson:"amount"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode payout amount: %w", err)
		}
		amounts = append(amounts, doc.Amount)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payout amounts: %w", err)
	}

	return amounts, nil
}

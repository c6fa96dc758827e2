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

type rideRepository struct {
	collection *mongo.Collection
}

func NewRideRepository(db *mongo.Database) interfaces.RideRepository {
	return &rideRepository{
		collection: db.Collection("rides"),
	}
}

func (r *rideRepository) Create(ctx context.Context, ride *models.Ride) error {
	ride.ID = primitive.NewObjectID()
	ride.CreatedAt = time.Now()
	ride.UpdatedAt = time.Now()
	if ride.Status == "" {
		ride.Status = models.RideStatusRequested
	}

	if _, err := r.collection.InsertOne(ctx, ride); err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}

	return nil
}

func (r *rideRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	var ride models.Ride
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("ride not found")
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	return &ride, nil
}

func (r *rideRepository) ListByDriver(ctx context.Context, driverID primitive.ObjectID, limit int64) ([]*models.Ride, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"driver_id": driverID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}
	defer cursor.Close(ctx)

	var rides []*models.Ride
	if err := cursor.All(ctx, &rides); err != nil {
		return nil, fmt.Errorf("failed to decode rides: %w", err)
	}

	return rides, nil
}

func (r *rideRepository) MarkCompleted(ctx context.Context, id primitive.ObjectID, finalPrice float64) error {
	now := time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": bson.M{"$in": []models.RideStatus{models.RideStatusAccepted, models.RideStatusOngoing}}},
		bson.M{"$set": bson.M{
			"status":       models.RideStatusCompleted,
			"final_price":  finalPrice,
			"completed_at": now,
			"updated_at":   now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to complete ride: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("ride not found or not completable")
	}

	return nil
}

// CompletedAmounts filters by current status inside the query so the
// snapshot reflects the ledger at read time, never a cached view.
func (r *rideRepository) CompletedAmounts(ctx context.Context, driverID primitive.ObjectID) ([]float64, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"driver_id": driverID, "status": models.RideStatusCompleted},
		options.Find().SetProjection(bson.M{"final_price": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed rides: %w", err)
	}
	defer cursor.Close(ctx)

	var amounts []float64
	for cursor.Next(ctx) {
		var doc struct {
			FinalPrice float64 `bson:"final_price"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode ride amount: %w", err)
		}
		amounts = append(amounts, doc.FinalPrice)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate completed rides: %w", err)
	}

	return amounts, nil
}

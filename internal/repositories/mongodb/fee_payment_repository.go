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

type feePaymentRepository struct {
	collection *mongo.Collection
}

func NewFeePaymentRepository(db *mongo.Database) interfaces.FeePaymentRepository {
	return &feePaymentRepository{
		collection: db.Collection("fee_payments"),
	}
}

func (r *feePaymentRepository) Create(ctx context.Context, payment *models.FeePayment) error {
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = time.Now()
	if payment.Status == "" {
		payment.Status = models.FeePaymentStatusPending
	}

	if _, err := r.collection.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("failed to create fee payment: %w", err)
	}

	return nil
}

func (r *feePaymentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FeePayment, error) {
	var payment models.FeePayment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("fee payment not found")
		}
		return nil, fmt.Errorf("failed to get fee payment: %w", err)
	}

	return &payment, nil
}

func (r *feePaymentRepository) ListByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.FeePayment, error) {
	return r.list(ctx, bson.M{"driver_id": driverID})
}

func (r *feePaymentRepository) ListByStatus(ctx context.Context, status models.FeePaymentStatus) ([]*models.FeePayment, error) {
	return r.list(ctx, bson.M{"status": status})
}

func (r *feePaymentRepository) list(ctx context.Context, filter bson.M) ([]*models.FeePayment, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list fee payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []*models.FeePayment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode fee payments: %w", err)
	}

	return payments, nil
}

func (r *feePaymentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.FeePaymentStatus, updates map[string]interface{}) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("invalid fee payment transition %s -> %s", from, to)
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
		return fmt.Errorf("failed to update fee payment: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrStatusConflict
	}

	return nil
}

func (r *feePaymentRepository) HasPending(ctx context.Context, driverID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"driver_id": driverID,
		"status":    models.FeePaymentStatusPending,
	})
	if err != nil {
		return false, fmt.Errorf("failed to count pending fee payments: %w", err)
	}

	return count > 0, nil
}

func (r *feePaymentRepository) ReservedAmounts(ctx context.Context, driverID primitive.ObjectID) ([]float64, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"driver_id": driverID, "status": models.FeePaymentStatusPending},
		options.Find().SetProjection(bson.M{"amount": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query fee payment amounts: %w", err)
	}
	defer cursor.Close(ctx)

	var amounts []float64
	for cursor.Next(ctx) {
		var doc struct {
			Amount float64 `bson:"amount"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode fee payment amount: %w", err)
		}
		amounts = append(amounts, doc.Amount)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fee payment amounts: %w", err)
	}

	return amounts, nil
}

// ExpireOverdue sweeps pending payments whose due date has passed into
// the expired state. The reservation they held is released implicitly:
// the next balance derivation filters them out by status.
func (r *feePaymentRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.collection.UpdateMany(
		ctx,
		bson.M{
			"status":   models.FeePaymentStatusPending,
			"due_date": bson.M{"$lt": now},
		},
		bson.M{"$set": bson.M{
			"status":     models.FeePaymentStatusExpired,
			"updated_at": now,
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire fee payments: %w", err)
	}

	return result.ModifiedCount, nil
}

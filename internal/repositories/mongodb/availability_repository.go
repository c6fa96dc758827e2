package mongodb

import (
	"context"
	"fmt"
	"time"

	"motora/internal/models"
	"motora/internal/repositories/interfaces"
	"motora/internal/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type availabilityRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewAvailabilityRepository(db *mongo.Database, cache services.CacheService) interfaces.AvailabilityRepository {
	return &availabilityRepository{
		collection: db.Collection("availability_rules"),
		cache:      cache,
	}
}

func (r *availabilityRepository) Create(ctx context.Context, rule *models.AvailabilityRule) error {
	rule.ID = primitive.NewObjectID()
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, rule); err != nil {
		return fmt.Errorf("failed to create availability rule: %w", err)
	}

	r.invalidate(ctx, rule.ServiceType, rule.Region)
	return nil
}

func (r *availabilityRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.AvailabilityRule, error) {
	var rule models.AvailabilityRule
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("availability rule not found")
		}
		return nil, fmt.Errorf("failed to get availability rule: %w", err)
	}

	return &rule, nil
}

func (r *availabilityRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	updates["updated_at"] = time.Now()

	_, err = r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update availability rule: %w", err)
	}

	r.invalidate(ctx, existing.ServiceType, existing.Region)
	return nil
}

func (r *availabilityRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete availability rule: %w", err)
	}

	r.invalidate(ctx, existing.ServiceType, existing.Region)
	return nil
}

func (r *availabilityRepository) GetActive(ctx context.Context, serviceType models.ServiceType, region string) ([]*models.AvailabilityRule, error) {
	key := services.AvailabilityKey(string(serviceType), region)

	var cached []*models.AvailabilityRule
	if err := r.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{
		"service_type": serviceType,
		"region":       region,
		"is_active":    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list availability rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []*models.AvailabilityRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode availability rules: %w", err)
	}

	r.cache.Set(ctx, key, rules, services.ConfigCacheTTL)
	return rules, nil
}

func (r *availabilityRepository) List(ctx context.Context, region string) ([]*models.AvailabilityRule, error) {
	filter := bson.M{}
	if region != "" {
		filter["region"] = region
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{
		{Key: "region", Value: 1},
		{Key: "service_type", Value: 1},
		{Key: "time_start", Value: 1},
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to list availability rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []*models.AvailabilityRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode availability rules: %w", err)
	}

	return rules, nil
}

func (r *availabilityRepository) invalidate(ctx context.Context, serviceType models.ServiceType, region string) {
	r.cache.Delete(ctx, services.AvailabilityKey(string(serviceType), region))
}

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

type pricingRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewPricingRepository(db *mongo.Database, cache services.CacheService) interfaces.PricingRepository {
	return &pricingRepository{
		collection: db.Collection("pricing_configurations"),
		cache:      cache,
	}
}

func (r *pricingRepository) Create(ctx context.Context, config *models.PricingConfiguration) error {
	config.ID = primitive.NewObjectID()
	config.CreatedAt = time.Now()
	config.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, config); err != nil {
		return fmt.Errorf("failed to create pricing configuration: %w", err)
	}

	r.invalidate(ctx, config.ServiceType, config.Region)
	return nil
}

func (r *pricingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PricingConfiguration, error) {
	var config models.PricingConfiguration
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&config)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("pricing configuration not found")
		}
		return nil, fmt.Errorf("failed to get pricing configuration: %w", err)
	}

	return &config, nil
}

func (r *pricingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
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
		return fmt.Errorf("failed to update pricing configuration: %w", err)
	}

	r.invalidate(ctx, existing.ServiceType, existing.Region)
	return nil
}

func (r *pricingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete pricing configuration: %w", err)
	}

	r.invalidate(ctx, existing.ServiceType, existing.Region)
	return nil
}

func (r *pricingRepository) GetActive(ctx context.Context, serviceType models.ServiceType, region string) (*models.PricingConfiguration, error) {
	key := services.PricingConfigKey(string(serviceType), region)

	var cached models.PricingConfiguration
	if err := r.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	var config models.PricingConfiguration
	err := r.collection.FindOne(ctx, bson.M{
		"service_type": serviceType,
		"region":       region,
		"is_active":    true,
	}).Decode(&config)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("no active pricing configuration for %s/%s", serviceType, region)
		}
		return nil, fmt.Errorf("failed to get pricing configuration: %w", err)
	}

	r.cache.Set(ctx, key, &config, services.ConfigCacheTTL)
	return &config, nil
}

func (r *pricingRepository) List(ctx context.Context, region string) ([]*models.PricingConfiguration, error) {
	filter := bson.M{}
	if region != "" {
		filter["region"] = region
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{
		{Key: "region", Value: 1},
		{Key: "service_type", Value: 1},
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing configurations: %w", err)
	}
	defer cursor.Close(ctx)

	var configs []*models.PricingConfiguration
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, fmt.Errorf("failed to decode pricing configurations: %w", err)
	}

	return configs, nil
}

func (r *pricingRepository) invalidate(ctx context.Context, serviceType models.ServiceType, region string) {
	r.cache.Delete(ctx, services.PricingConfigKey(string(serviceType), region))
}

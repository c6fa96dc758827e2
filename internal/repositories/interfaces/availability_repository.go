package interfaces

import (
	"context"

	"motora/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AvailabilityRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, rule *models.AvailabilityRule) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.AvailabilityRule, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Quote path: only active rules for the service type and region.
	GetActive(ctx context.Context, serviceType models.ServiceType, region string) ([]*models.AvailabilityRule, error)

	// Admin listing
	List(ctx context.Context, region string) ([]*models.AvailabilityRule, error)
}

package interfaces

import (
	"context"

	"motora/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PricingRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, config *models.PricingConfiguration) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.PricingConfiguration, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Quote path
	GetActive(ctx context.Context, serviceType models.ServiceType, region string) (*models.PricingConfiguration, error)

	// Admin listing
	List(ctx context.Context, region string) ([]*models.PricingConfiguration, error)
}

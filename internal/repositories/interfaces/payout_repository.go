package interfaces

import (
	"context"

	"motora/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PayoutRepository interface {
	Create(ctx context.Context, request *models.PayoutRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.PayoutRequest, error)
	ListByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.PayoutRequest, error)
	ListByStatus(ctx context.Context, status models.PayoutStatus) ([]*models.PayoutRequest, error)

	// UpdateStatus transitions a request and applies the extra fields
	// atomically, filtering on the expected current status so a
	// concurrent transition loses cleanly instead of resurrecting a
	// terminal request.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.PayoutStatus, updates map[string]interface{}) error

	// Balance snapshot inputs, filtered by current status in the query.
	PaidAmounts(ctx context.Context, driverID primitive.ObjectID) ([]float64, error)
	ReservedAmounts(ctx context.Context, driverID primitive.ObjectID) ([]float64, error)
}

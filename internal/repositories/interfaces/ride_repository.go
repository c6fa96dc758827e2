package interfaces

import (
	"context"

	"motora/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideRepository interface {
	Create(ctx context.Context, ride *models.Ride) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error)
	ListByDriver(ctx context.Context, driverID primitive.ObjectID, limit int64) ([]*models.Ride, error)
	MarkCompleted(ctx context.Context, id primitive.ObjectID, finalPrice float64) error

	// CompletedAmounts returns the prices of the driver's completed
	// rides, the gross-earnings input of a balance snapshot.
	CompletedAmounts(ctx context.Context, driverID primitive.ObjectID) ([]float64, error)
}

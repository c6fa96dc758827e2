package interfaces

import (
	"context"
	"time"

	"motora/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FeePaymentRepository interface {
	Create(ctx context.Context, payment *models.FeePayment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.FeePayment, error)
	ListByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.FeePayment, error)
	ListByStatus(ctx context.Context, status models.FeePaymentStatus) ([]*models.FeePayment, error)

	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.FeePaymentStatus, updates map[string]interface{}) error

	// HasPending reports whether the driver already has an open fee
	// request; one at a time.
	HasPending(ctx context.Context, driverID primitive.ObjectID) (bool, error)

	// ReservedAmounts feeds the balance snapshot.
	ReservedAmounts(ctx context.Context, driverID primitive.ObjectID) ([]float64, error)

	// ExpireOverdue moves pending payments past their due date to
	// expired and returns how many were transitioned.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

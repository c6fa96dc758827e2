package services

import (
	"context"
	"fmt"

	"motora/internal/balance"
	"motora/internal/models"
	"motora/internal/repositories/interfaces"
	"motora/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BalanceService derives a driver's balance from the ride and request
// ledgers. There is no stored balance document to drift out of sync;
// every read folds the ledgers again.
type BalanceService struct {
	rideRepo   interfaces.RideRepository
	payoutRepo interfaces.PayoutRepository
	feeRepo    interfaces.FeePaymentRepository
	logger     *logger.Logger
}

func NewBalanceService(
	rideRepo interfaces.RideRepository,
	payoutRepo interfaces.PayoutRepository,
	feeRepo interfaces.FeePaymentRepository,
	log *logger.Logger,
) *BalanceService {
	return &BalanceService{
		rideRepo:   rideRepo,
		payoutRepo: payoutRepo,
		feeRepo:    feeRepo,
		logger:     log,
	}
}

// Snapshot reads the three ledger slices a balance is derived from.
func (s *BalanceService) Snapshot(ctx context.Context, driverID primitive.ObjectID) (models.BalanceSnapshot, error) {
	var snapshot models.BalanceSnapshot

	completed, err := s.rideRepo.CompletedAmounts(ctx, driverID)
	if err != nil {
		return snapshot, fmt.Errorf("failed to read completed ride amounts: %w", err)
	}

	paid, err := s.payoutRepo.PaidAmounts(ctx, driverID)
	if err != nil {
		return snapshot, fmt.Errorf("failed to read paid payout amounts: %w", err)
	}

	reservedPayouts, err := s.payoutRepo.ReservedAmounts(ctx, driverID)
	if err != nil {
		return snapshot, fmt.Errorf("failed to read reserved payout amounts: %w", err)
	}

	reservedFees, err := s.feeRepo.ReservedAmounts(ctx, driverID)
	if err != nil {
		return snapshot, fmt.Errorf("failed to read reserved fee amounts: %w", err)
	}

	snapshot.CompletedRideAmounts = completed
	snapshot.PaidPayoutAmounts = paid
	snapshot.ReservedAmounts = append(reservedPayouts, reservedFees...)
	return snapshot, nil
}

// GetBalance folds a fresh snapshot into a balance.
func (s *BalanceService) GetBalance(ctx context.Context, driverID primitive.ObjectID) (*models.DriverBalance, error) {
	snapshot, err := s.Snapshot(ctx, driverID)
	if err != nil {
		return nil, err
	}

	derived := balance.Compute(snapshot)
	return &derived, nil
}

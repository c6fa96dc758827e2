package services

import (
	"context"
	"fmt"

	"motora/internal/models"
	"motora/internal/repositories/interfaces"
	"motora/internal/utils"
	"motora/pkg/logger"
	"motora/pkg/websocket"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RideService is the ingest side of the earnings ledger. The dispatch
// and matching flow lives elsewhere; this service only records rides
// and their completion so balances can be derived from them.
type RideService struct {
	rideRepo interfaces.RideRepository
	hub      *websocket.Hub
	logger   *logger.Logger
}

func NewRideService(rideRepo interfaces.RideRepository, hub *websocket.Hub, log *logger.Logger) *RideService {
	return &RideService{
		rideRepo: rideRepo,
		hub:      hub,
		logger:   log,
	}
}

func (s *RideService) RecordRide(ctx context.Context, ride *models.Ride) error {
	if !ride.ServiceType.IsValid() {
		return fmt.Errorf("invalid service type: %s", ride.ServiceType)
	}
	if ride.Currency == "" {
		ride.Currency = utils.DefaultCurrency
	}
	if ride.Status == "" {
		ride.Status = models.RideStatusRequested
	}

	return s.rideRepo.Create(ctx, ride)
}

// CompleteRide marks the ride completed with its final price, rounded
// once here because this is the point of charge. The driver's balance
// picks the amount up on its next derivation.
func (s *RideService) CompleteRide(ctx context.Context, id primitive.ObjectID, finalPrice float64) (*models.Ride, error) {
	if err := s.rideRepo.MarkCompleted(ctx, id, utils.RoundCurrency(finalPrice)); err != nil {
		return nil, err
	}

	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.WithDriverID(ride.DriverID).WithField("ride_id", id.Hex()).Info("Ride completed")
	if s.hub != nil {
		s.hub.NotifyDriver(ride.DriverID, websocket.EventBalanceChanged)
	}
	return ride, nil
}

func (s *RideService) ListDriverRides(ctx context.Context, driverID primitive.ObjectID, limit int64) ([]*models.Ride, error) {
	return s.rideRepo.ListByDriver(ctx, driverID, limit)
}

package services

import (
	"context"
	"fmt"
	"time"

	"motora/internal/balance"
	"motora/internal/fees"
	"motora/internal/models"
	"motora/internal/repositories/interfaces"
	"motora/internal/utils"
	"motora/pkg/logger"
	"motora/pkg/websocket"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeeService manages the mandatory service-fee payments new drivers
// owe the platform. Eligibility is a deadline window counted in whole
// days from registration; the amount is the platform fee applied to
// the driver's accumulated earnings.
type FeeService struct {
	feeRepo        interfaces.FeePaymentRepository
	balanceService *BalanceService
	hub            *websocket.Hub
	feeConfig      fees.Config
	deadlineDays   int
	logger         *logger.Logger
}

func NewFeeService(
	feeRepo interfaces.FeePaymentRepository,
	balanceService *BalanceService,
	hub *websocket.Hub,
	feeConfig fees.Config,
	deadlineDays int,
	log *logger.Logger,
) *FeeService {
	if deadlineDays <= 0 {
		deadlineDays = utils.DefaultFeeDeadlineDays
	}

	return &FeeService{
		feeRepo:        feeRepo,
		balanceService: balanceService,
		hub:            hub,
		feeConfig:      feeConfig,
		deadlineDays:   deadlineDays,
		logger:         log,
	}
}

// Eligibility reports whether the driver may open a fee-payment
// request right now. registeredAt comes from the caller's identity
// context; this service keeps no driver profile of its own.
func (s *FeeService) Eligibility(ctx context.Context, driverID primitive.ObjectID, registeredAt time.Time) (*balance.FeeEligibility, error) {
	hasActive, err := s.feeRepo.HasPending(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending fee payments: %w", err)
	}

	eligibility := balance.FeeRequestEligibility(registeredAt, time.Now(), hasActive, s.deadlineDays)
	return &eligibility, nil
}

// RequestFeePayment opens a pending fee payment for the driver. An
// ineligible driver gets the eligibility back with a nil payment and
// no error. The charged amount is the fee rule applied to the driver's
// current total earnings, snapshotted into the payment.
func (s *FeeService) RequestFeePayment(ctx context.Context, driverID primitive.ObjectID, registeredAt time.Time) (*models.FeePayment, *balance.FeeEligibility, error) {
	eligibility, err := s.Eligibility(ctx, driverID, registeredAt)
	if err != nil {
		return nil, nil, err
	}
	if !eligibility.CanRequest {
		s.logger.WithDriverID(driverID).WithField("reason", string(eligibility.Reason)).Info("Fee payment request refused")
		return nil, eligibility, nil
	}

	current, err := s.balanceService.GetBalance(ctx, driverID)
	if err != nil {
		return nil, nil, err
	}

	breakdown := fees.Calculate(s.feeConfig, current.TotalEarnings)
	dueDate := time.Now().AddDate(0, 0, s.deadlineDays)

	payment := &models.FeePayment{
		DriverID: driverID,
		Amount:   breakdown.ChargedAmount,
		Currency: utils.DefaultCurrency,
		Status:   models.FeePaymentStatusPending,
		Fee:      &breakdown,
		DueDate:  &dueDate,
	}

	if err := s.feeRepo.Create(ctx, payment); err != nil {
		return nil, nil, fmt.Errorf("failed to create fee payment: %w", err)
	}

	s.logger.LogSettlementEvent(payment.ID, "fee_requested", payment.Amount, payment.Currency)
	s.notifyDriver(driverID)

	return payment, eligibility, nil
}

func (s *FeeService) GetFeePayment(ctx context.Context, id primitive.ObjectID) (*models.FeePayment, error) {
	return s.feeRepo.GetByID(ctx, id)
}

func (s *FeeService) ListDriverFeePayments(ctx context.Context, driverID primitive.ObjectID) ([]*models.FeePayment, error) {
	return s.feeRepo.ListByDriver(ctx, driverID)
}

func (s *FeeService) ListFeePaymentsByStatus(ctx context.Context, status models.FeePaymentStatus) ([]*models.FeePayment, error) {
	return s.feeRepo.ListByStatus(ctx, status)
}

// MarkPaid settles a pending fee payment.
func (s *FeeService) MarkPaid(ctx context.Context, id primitive.ObjectID) (*models.FeePayment, error) {
	now := time.Now()
	updates := map[string]interface{}{"paid_at": now}
	if err := s.feeRepo.UpdateStatus(ctx, id, models.FeePaymentStatusPending, models.FeePaymentStatusPaid, updates); err != nil {
		return nil, err
	}

	payment, err := s.feeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.LogSettlementEvent(id, "fee_paid", payment.Amount, payment.Currency)
	s.notifyDriver(payment.DriverID)
	return payment, nil
}

// Cancel voids a pending fee payment, releasing its reservation.
func (s *FeeService) Cancel(ctx context.Context, id primitive.ObjectID) (*models.FeePayment, error) {
	if err := s.feeRepo.UpdateStatus(ctx, id, models.FeePaymentStatusPending, models.FeePaymentStatusCanceled, nil); err != nil {
		return nil, err
	}

	payment, err := s.feeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.LogSettlementEvent(id, "fee_canceled", payment.Amount, payment.Currency)
	s.notifyDriver(payment.DriverID)
	return payment, nil
}

// ExpireOverdue sweeps pending payments past their due date into
// expired. Run periodically and exposed to admins for a manual sweep.
func (s *FeeService) ExpireOverdue(ctx context.Context) (int64, error) {
	expired, err := s.feeRepo.ExpireOverdue(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to expire overdue fee payments: %w", err)
	}

	if expired > 0 {
		s.logger.WithField("expired", expired).Info("Expired overdue fee payments")
	}
	return expired, nil
}

func (s *FeeService) notifyDriver(driverID primitive.ObjectID) {
	if s.hub != nil {
		s.hub.NotifyDriver(driverID, websocket.EventFeeUpdated)
	}
}

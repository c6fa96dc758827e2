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
	"motora/pkg/payout"
	"motora/pkg/websocket"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PayoutService runs the withdrawal lifecycle: eligibility check and
// creation on the driver side, approval/rejection and execution on the
// settlement side. The fee breakdown is snapshotted at creation so an
// admin editing the fee configuration never changes an open request.
type PayoutService struct {
	payoutRepo     interfaces.PayoutRepository
	pricingRepo    interfaces.PricingRepository
	balanceService *BalanceService
	gateway        payout.Gateway
	hub            *websocket.Hub
	defaultFee     fees.Config
	logger         *logger.Logger
}

func NewPayoutService(
	payoutRepo interfaces.PayoutRepository,
	pricingRepo interfaces.PricingRepository,
	balanceService *BalanceService,
	gateway payout.Gateway,
	hub *websocket.Hub,
	defaultFee fees.Config,
	log *logger.Logger,
) *PayoutService {
	return &PayoutService{
		payoutRepo:     payoutRepo,
		pricingRepo:    pricingRepo,
		balanceService: balanceService,
		gateway:        gateway,
		hub:            hub,
		defaultFee:     defaultFee,
		logger:         log,
	}
}

// feeConfigFor resolves the fee rule for a withdrawal. A driver's
// service type carries its own fee configuration when one is active;
// otherwise the platform default applies.
func (s *PayoutService) feeConfigFor(ctx context.Context, serviceType models.ServiceType, region string) fees.Config {
	if !serviceType.IsValid() {
		return s.defaultFee
	}

	config, err := s.pricingRepo.GetActive(ctx, serviceType, region)
	if err != nil || config == nil || !config.ServiceFeeType.IsValid() {
		return s.defaultFee
	}

	return fees.Config{Type: config.ServiceFeeType, Value: config.ServiceFeeValue}
}

// PreviewWithdrawal runs the eligibility check without creating a
// request, so the app can show the breakdown before the driver commits.
func (s *PayoutService) PreviewWithdrawal(ctx context.Context, driverID primitive.ObjectID, amount float64, serviceType models.ServiceType, region string) (*balance.WithdrawalDecision, error) {
	current, err := s.balanceService.GetBalance(ctx, driverID)
	if err != nil {
		return nil, err
	}

	decision := balance.CanRequestWithdrawal(current.Available, amount, s.feeConfigFor(ctx, serviceType, region))
	return &decision, nil
}

// RequestWithdrawal re-derives the balance immediately before deciding,
// so the check always runs against the current ledger state. A
// disallowed request returns the decision with a nil payout and no
// error; rejection is an expected outcome, not a failure.
func (s *PayoutService) RequestWithdrawal(ctx context.Context, driverID primitive.ObjectID, amount float64, serviceType models.ServiceType, region string) (*models.PayoutRequest, *balance.WithdrawalDecision, error) {
	current, err := s.balanceService.GetBalance(ctx, driverID)
	if err != nil {
		return nil, nil, err
	}

	feeConfig := s.feeConfigFor(ctx, serviceType, region)
	decision := balance.CanRequestWithdrawal(current.Available, amount, feeConfig)
	if !decision.Allowed {
		s.logger.WithDriverID(driverID).WithFields(map[string]interface{}{
			"amount": amount,
			"reason": string(decision.Reason),
		}).Info("Withdrawal request refused")
		return nil, &decision, nil
	}

	breakdown := fees.Calculate(feeConfig, amount)
	request := &models.PayoutRequest{
		DriverID: driverID,
		Amount:   utils.RoundCurrency(amount),
		Currency: utils.DefaultCurrency,
		Status:   models.PayoutStatusPending,
		Fee:      &breakdown,
	}

	if err := s.payoutRepo.Create(ctx, request); err != nil {
		return nil, nil, fmt.Errorf("failed to create payout request: %w", err)
	}

	s.logger.LogSettlementEvent(request.ID, "payout_requested", request.Amount, request.Currency)
	s.notifyDriver(driverID, websocket.EventBalanceChanged)

	return request, &decision, nil
}

func (s *PayoutService) GetPayout(ctx context.Context, id primitive.ObjectID) (*models.PayoutRequest, error) {
	return s.payoutRepo.GetByID(ctx, id)
}

func (s *PayoutService) ListDriverPayouts(ctx context.Context, driverID primitive.ObjectID) ([]*models.PayoutRequest, error) {
	return s.payoutRepo.ListByDriver(ctx, driverID)
}

func (s *PayoutService) ListPayoutsByStatus(ctx context.Context, status models.PayoutStatus) ([]*models.PayoutRequest, error) {
	return s.payoutRepo.ListByStatus(ctx, status)
}

// Approve moves a pending request to approved. The amount stays
// reserved; only execution releases it, by turning it into a paid sum.
func (s *PayoutService) Approve(ctx context.Context, id primitive.ObjectID) (*models.PayoutRequest, error) {
	if err := s.payoutRepo.UpdateStatus(ctx, id, models.PayoutStatusPending, models.PayoutStatusApproved, nil); err != nil {
		return nil, err
	}

	request, err := s.payoutRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.LogSettlementEvent(id, "payout_approved", request.Amount, request.Currency)
	s.notifyDriver(request.DriverID, websocket.EventPayoutUpdated)
	return request, nil
}

// Reject moves a pending request to rejected, releasing the
// reservation. The reason is stored verbatim for the driver to see.
func (s *PayoutService) Reject(ctx context.Context, id primitive.ObjectID, reason string) (*models.PayoutRequest, error) {
	updates := map[string]interface{}{"reject_reason": reason}
	if err := s.payoutRepo.UpdateStatus(ctx, id, models.PayoutStatusPending, models.PayoutStatusRejected, updates); err != nil {
		return nil, err
	}

	request, err := s.payoutRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.LogSettlementEvent(id, "payout_rejected", request.Amount, request.Currency)
	s.notifyDriver(request.DriverID, websocket.EventPayoutUpdated)
	return request, nil
}

// ExecutePayout sends the net amount through the gateway and moves the
// request from approved to paid. The status transition happens after
// the transfer succeeds; a gateway failure leaves the request approved
// for retry.
func (s *PayoutService) ExecutePayout(ctx context.Context, id primitive.ObjectID, destinationAccount string) (*models.PayoutRequest, error) {
	request, err := s.payoutRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !request.Status.CanTransitionTo(models.PayoutStatusPaid) {
		return nil, fmt.Errorf("payout %s is %s, not approved", id.Hex(), request.Status)
	}

	netAmount := request.Amount
	if request.Fee != nil {
		netAmount = request.Fee.NetAmount
	}

	transfer, err := s.gateway.SendPayout(ctx, &payout.Request{
		Amount:             netAmount,
		Currency:           request.Currency,
		DestinationAccount: destinationAccount,
		Description:        "Driver earnings payout",
		Reference:          request.ID.Hex(),
		Metadata: map[string]string{
			"driver_id": request.DriverID.Hex(),
		},
	})
	if err != nil {
		s.logger.WithError(err).WithField("payout_id", id.Hex()).Error("Payout transfer failed")
		return nil, fmt.Errorf("failed to send payout: %w", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"transfer_id":  transfer.TransferID,
		"processed_at": now,
	}
	if err := s.payoutRepo.UpdateStatus(ctx, id, models.PayoutStatusApproved, models.PayoutStatusPaid, updates); err != nil {
		// The money moved but the ledger did not. Loud log; the
		// transfer reference makes manual reconciliation possible.
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"payout_id":   id.Hex(),
			"transfer_id": transfer.TransferID,
		}).Error("Transfer sent but status update failed")
		return nil, err
	}

	request, err = s.payoutRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.LogSettlementEvent(id, "payout_paid", netAmount, request.Currency)
	s.notifyDriver(request.DriverID, websocket.EventPayoutUpdated)
	s.notifyDriver(request.DriverID, websocket.EventBalanceChanged)
	return request, nil
}

func (s *PayoutService) notifyDriver(driverID primitive.ObjectID, eventType string) {
	if s.hub != nil {
		s.hub.NotifyDriver(driverID, eventType)
	}
}

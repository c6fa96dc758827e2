package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"motora/internal/balance"
	"motora/internal/fees"
	"motora/internal/models"
	"motora/pkg/logger"
	"motora/pkg/payout"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.SetOutput(io.Discard)
	return log
}

type fakeRideRepo struct {
	completed map[primitive.ObjectID][]float64
}

func (f *fakeRideRepo) Create(ctx context.Context, ride *models.Ride) error {
	ride.ID = primitive.NewObjectID()
	return nil
}

func (f *fakeRideRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	return nil, errors.New("not found")
}

func (f *fakeRideRepo) ListByDriver(ctx context.Context, driverID primitive.ObjectID, limit int64) ([]*models.Ride, error) {
	return nil, nil
}

func (f *fakeRideRepo) MarkCompleted(ctx context.Context, id primitive.ObjectID, finalPrice float64) error {
	return nil
}

func (f *fakeRideRepo) CompletedAmounts(ctx context.Context, driverID primitive.ObjectID) ([]float64, error) {
	return f.completed[driverID], nil
}

type fakePayoutRepo struct {
	requests map[primitive.ObjectID]*models.PayoutRequest
}

func newFakePayoutRepo() *fakePayoutRepo {
	return &fakePayoutRepo{requests: make(map[primitive.ObjectID]*models.PayoutRequest)}
}

func (f *fakePayoutRepo) Create(ctx context.Context, request *models.PayoutRequest) error {
	request.ID = primitive.NewObjectID()
	request.CreatedAt = time.Now()
	f.requests[request.ID] = request
	return nil
}

func (f *fakePayoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PayoutRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, errors.New("payout request not found")
	}
	copied := *request
	return &copied, nil
}

func (f *fakePayoutRepo) ListByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.PayoutRequest, error) {
	var out []*models.PayoutRequest
	for _, r := range f.requests {
		if r.DriverID == driverID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePayoutRepo) ListByStatus(ctx context.Context, status models.PayoutStatus) ([]*models.PayoutRequest, error) {
	var out []*models.PayoutRequest
	for _, r := range f.requests {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePayoutRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.PayoutStatus, updates map[string]interface{}) error {
	request, ok := f.requests[id]
	if !ok {
		return errors.New("payout request not found")
	}
	if request.Status != from || !from.CanTransitionTo(to) {
		return errors.New("request status changed concurrently")
	}
	request.Status = to
	if reason, ok := updates["reject_reason"].(string); ok {
		request.RejectReason = reason
	}
	if transferID, ok := updates["transfer_id"].(string); ok {
		request.TransferID = transferID
	}
	if processedAt, ok := updates["processed_at"].(time.Time); ok {
		request.ProcessedAt = &processedAt
	}
	return nil
}

func (f *fakePayoutRepo) PaidAmounts(ctx context.Context, driverID primitive.ObjectID) ([]float64, error) {
	var out []float64
	for _, r := range f.requests {
		if r.DriverID == driverID && r.Status == models.PayoutStatusPaid {
			out = append(out, r.Amount)
		}
	}
	return out, nil
}

func (f *fakePayoutRepo) ReservedAmounts(ctx context.Context, driverID primitive.ObjectID) ([]float64, error) {
	var out []float64
	for _, r := range f.requests {
		if r.DriverID == driverID && r.Status.ReservesBalance() {
			out = append(out, r.Amount)
		}
	}
	return out, nil
}

type fakeFeeRepo struct {
	payments map[primitive.ObjectID]*models.FeePayment
}

func newFakeFeeRepo() *fakeFeeRepo {
	return &fakeFeeRepo{payments: make(map[primitive.ObjectID]*models.FeePayment)}
}

func (f *fakeFeeRepo) Create(ctx context.Context, payment *models.FeePayment) error {
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now()
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakeFeeRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FeePayment, error) {
	payment, ok := f.payments[id]
	if !ok {
		return nil, errors.New("fee payment not found")
	}
	copied := *payment
	return &copied, nil
}

func (f *fakeFeeRepo) ListByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.FeePayment, error) {
	var out []*models.FeePayment
	for _, p := range f.payments {
		if p.DriverID == driverID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeFeeRepo) ListByStatus(ctx context.Context, status models.FeePaymentStatus) ([]*models.FeePayment, error) {
	var out []*models.FeePayment
	for _, p := range f.payments {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeFeeRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.FeePaymentStatus, updates map[string]interface{}) error {
	payment, ok := f.payments[id]
	if !ok {
		return errors.New("fee payment not found")
	}
	if payment.Status != from || !from.CanTransitionTo(to) {
		return errors.New("request status changed concurrently")
	}
	payment.Status = to
	if paidAt, ok := updates["paid_at"].(time.Time); ok {
		payment.PaidAt = &paidAt
	}
	return nil
}

func (f *fakeFeeRepo) HasPending(ctx context.Context, driverID primitive.ObjectID) (bool, error) {
	for _, p := range f.payments {
		if p.DriverID == driverID && p.Status == models.FeePaymentStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFeeRepo) ReservedAmounts(ctx context.Context, driverID primitive.ObjectID) ([]float64, error) {
	var out []float64
	for _, p := range f.payments {
		if p.DriverID == driverID && p.Status.ReservesBalance() {
			out = append(out, p.Amount)
		}
	}
	return out, nil
}

func (f *fakeFeeRepo) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	var expired int64
	for _, p := range f.payments {
		if p.Status == models.FeePaymentStatusPending && p.DueDate != nil && p.DueDate.Before(now) {
			p.Status = models.FeePaymentStatusExpired
			expired++
		}
	}
	return expired, nil
}

type fakeGateway struct {
	requests []*payout.Request
	fail     bool
}

func (f *fakeGateway) SendPayout(ctx context.Context, request *payout.Request) (*payout.Response, error) {
	if f.fail {
		return nil, errors.New("gateway unavailable")
	}
	f.requests = append(f.requests, request)
	return &payout.Response{
		TransferID: "tr_test_123",
		Status:     "pending",
		Amount:     request.Amount,
		Currency:   request.Currency,
	}, nil
}

func newTestPayoutService(t *testing.T, rideRepo *fakeRideRepo, payoutRepo *fakePayoutRepo, feeRepo *fakeFeeRepo, gateway *fakeGateway) (*PayoutService, *BalanceService) {
	t.Helper()
	log := testLogger(t)
	balanceService := NewBalanceService(rideRepo, payoutRepo, feeRepo, log)
	defaultFee := fees.Config{Type: models.ServiceFeeTypePercent, Value: 10}
	return NewPayoutService(payoutRepo, nil, balanceService, gateway, nil, defaultFee, log), balanceService
}

func TestBalanceServiceDerivesFromLedgers(t *testing.T) {
	driverID := primitive.NewObjectID()
	rideRepo := &fakeRideRepo{completed: map[primitive.ObjectID][]float64{
		driverID: {40.00, 12.50},
	}}
	payoutRepo := newFakePayoutRepo()
	feeRepo := newFakeFeeRepo()

	payoutRepo.Create(context.Background(), &models.PayoutRequest{
		DriverID: driverID, Amount: 10.00, Status: models.PayoutStatusPending,
	})

	_, balanceService := newTestPayoutService(t, rideRepo, payoutRepo, feeRepo, &fakeGateway{})

	derived, err := balanceService.GetBalance(context.Background(), driverID)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if derived.TotalEarnings != 52.50 {
		t.Errorf("TotalEarnings = %v, want 52.50", derived.TotalEarnings)
	}
	if derived.Reserved != 10.00 {
		t.Errorf("Reserved = %v, want 10.00", derived.Reserved)
	}
	if derived.Available != 42.50 {
		t.Errorf("Available = %v, want 42.50", derived.Available)
	}
}

func TestRequestWithdrawalEndToEnd(t *testing.T) {
	driverID := primitive.NewObjectID()
	rideRepo := &fakeRideRepo{completed: map[primitive.ObjectID][]float64{
		driverID: {40.00},
	}}
	payoutRepo := newFakePayoutRepo()
	feeRepo := newFakeFeeRepo()
	service, _ := newTestPayoutService(t, rideRepo, payoutRepo, feeRepo, &fakeGateway{})

	request, decision, err := service.RequestWithdrawal(context.Background(), driverID, 40.00, "", "")
	if err != nil {
		t.Fatalf("RequestWithdrawal: %v", err)
	}
	if request == nil {
		t.Fatalf("request refused: %+v", decision)
	}
	if !decision.Allowed {
		t.Fatalf("decision.Allowed = false, reason %s", decision.Reason)
	}
	if decision.ChargedAmount != 4.00 {
		t.Errorf("ChargedAmount = %v, want 4.00", decision.ChargedAmount)
	}
	if decision.NetAmount != 36.00 {
		t.Errorf("NetAmount = %v, want 36.00", decision.NetAmount)
	}
	if request.Status != models.PayoutStatusPending {
		t.Errorf("Status = %s, want pending", request.Status)
	}
	if request.Fee == nil || request.Fee.NetAmount != 36.00 {
		t.Errorf("Fee breakdown = %+v, want net 36.00", request.Fee)
	}
}

func TestRequestWithdrawalSeesEarlierReservation(t *testing.T) {
	driverID := primitive.NewObjectID()
	rideRepo := &fakeRideRepo{completed: map[primitive.ObjectID][]float64{
		driverID: {40.00},
	}}
	payoutRepo := newFakePayoutRepo()
	feeRepo := newFakeFeeRepo()
	service, _ := newTestPayoutService(t, rideRepo, payoutRepo, feeRepo, &fakeGateway{})

	if _, _, err := service.RequestWithdrawal(context.Background(), driverID, 40.00, "", ""); err != nil {
		t.Fatalf("first RequestWithdrawal: %v", err)
	}

	// The first request reserved the whole balance; the second must be
	// refused on the fresh derivation.
	request, decision, err := service.RequestWithdrawal(context.Background(), driverID, 40.00, "", "")
	if err != nil {
		t.Fatalf("second RequestWithdrawal: %v", err)
	}
	if request != nil {
		t.Fatal("second request was created against a fully reserved balance")
	}
	if decision.Reason != balance.ReasonInsufficientBalance {
		t.Errorf("Reason = %s, want %s", decision.Reason, balance.ReasonInsufficientBalance)
	}
}

func TestRequestWithdrawalBelowMinimumNet(t *testing.T) {
	driverID := primitive.NewObjectID()
	rideRepo := &fakeRideRepo{completed: map[primitive.ObjectID][]float64{
		driverID: {40.00},
	}}
	service, _ := newTestPayoutService(t, rideRepo, newFakePayoutRepo(), newFakeFeeRepo(), &fakeGateway{})

	// 10.50 gross at 10% leaves 9.45 net, under the R$ 10.00 floor.
	request, decision, err := service.RequestWithdrawal(context.Background(), driverID, 10.50, "", "")
	if err != nil {
		t.Fatalf("RequestWithdrawal: %v", err)
	}
	if request != nil {
		t.Fatal("request was created below the minimum net")
	}
	if decision.Reason != balance.ReasonBelowMinimumNet {
		t.Errorf("Reason = %s, want %s", decision.Reason, balance.ReasonBelowMinimumNet)
	}
}

func TestPayoutLifecycle(t *testing.T) {
	driverID := primitive.NewObjectID()
	rideRepo := &fakeRideRepo{completed: map[primitive.ObjectID][]float64{
		driverID: {100.00},
	}}
	payoutRepo := newFakePayoutRepo()
	gateway := &fakeGateway{}
	service, _ := newTestPayoutService(t, rideRepo, payoutRepo, newFakeFeeRepo(), gateway)

	request, _, err := service.RequestWithdrawal(context.Background(), driverID, 50.00, "", "")
	if err != nil {
		t.Fatalf("RequestWithdrawal: %v", err)
	}

	// Paying before approval must fail and not touch the gateway.
	if _, err := service.ExecutePayout(context.Background(), request.ID, "acct_br_1"); err == nil {
		t.Fatal("ExecutePayout succeeded on a pending request")
	}
	if len(gateway.requests) != 0 {
		t.Fatal("gateway called for a pending request")
	}

	if _, err := service.Approve(context.Background(), request.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	paid, err := service.ExecutePayout(context.Background(), request.ID, "acct_br_1")
	if err != nil {
		t.Fatalf("ExecutePayout: %v", err)
	}
	if paid.Status != models.PayoutStatusPaid {
		t.Errorf("Status = %s, want paid", paid.Status)
	}
	if paid.TransferID != "tr_test_123" {
		t.Errorf("TransferID = %q, want tr_test_123", paid.TransferID)
	}
	if len(gateway.requests) != 1 {
		t.Fatalf("gateway calls = %d, want 1", len(gateway.requests))
	}
	// The transfer carries the net, not the gross.
	if gateway.requests[0].Amount != 45.00 {
		t.Errorf("transfer amount = %v, want 45.00", gateway.requests[0].Amount)
	}

	// Approving again must fail: paid is terminal.
	if _, err := service.Approve(context.Background(), request.ID); err == nil {
		t.Fatal("Approve succeeded on a paid request")
	}
}

func TestRejectReleasesReservation(t *testing.T) {
	driverID := primitive.NewObjectID()
	rideRepo := &fakeRideRepo{completed: map[primitive.ObjectID][]float64{
		driverID: {40.00},
	}}
	payoutRepo := newFakePayoutRepo()
	service, balanceService := newTestPayoutService(t, rideRepo, payoutRepo, newFakeFeeRepo(), &fakeGateway{})

	request, _, err := service.RequestWithdrawal(context.Background(), driverID, 40.00, "", "")
	if err != nil {
		t.Fatalf("RequestWithdrawal: %v", err)
	}

	rejected, err := service.Reject(context.Background(), request.ID, "bank account mismatch")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.RejectReason != "bank account mismatch" {
		t.Errorf("RejectReason = %q", rejected.RejectReason)
	}

	derived, err := balanceService.GetBalance(context.Background(), driverID)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if derived.Available != 40.00 {
		t.Errorf("Available after rejection = %v, want 40.00", derived.Available)
	}
}

func TestGatewayFailureLeavesRequestApproved(t *testing.T) {
	driverID := primitive.NewObjectID()
	rideRepo := &fakeRideRepo{completed: map[primitive.ObjectID][]float64{
		driverID: {100.00},
	}}
	payoutRepo := newFakePayoutRepo()
	gateway := &fakeGateway{fail: true}
	service, _ := newTestPayoutService(t, rideRepo, payoutRepo, newFakeFeeRepo(), gateway)

	request, _, err := service.RequestWithdrawal(context.Background(), driverID, 50.00, "", "")
	if err != nil {
		t.Fatalf("RequestWithdrawal: %v", err)
	}
	if _, err := service.Approve(context.Background(), request.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	if _, err := service.ExecutePayout(context.Background(), request.ID, "acct_br_1"); err == nil {
		t.Fatal("ExecutePayout succeeded despite gateway failure")
	}

	current, err := service.GetPayout(context.Background(), request.ID)
	if err != nil {
		t.Fatalf("GetPayout: %v", err)
	}
	if current.Status != models.PayoutStatusApproved {
		t.Errorf("Status after gateway failure = %s, want approved", current.Status)
	}
}

package services

import (
	"context"
	"testing"
	"time"

	"motora/internal/balance"
	"motora/internal/fees"
	"motora/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestFeeService(t *testing.T, rideRepo *fakeRideRepo, feeRepo *fakeFeeRepo) *FeeService {
	t.Helper()
	log := testLogger(t)
	balanceService := NewBalanceService(rideRepo, newFakePayoutRepo(), feeRepo, log)
	feeConfig := fees.Config{Type: models.ServiceFeeTypePercent, Value: 10}
	return NewFeeService(feeRepo, balanceService, nil, feeConfig, 2, log)
}

func TestRequestFeePaymentInsideWindow(t *testing.T) {
	driverID := primitive.NewObjectID()
	rideRepo := &fakeRideRepo{completed: map[primitive.ObjectID][]float64{
		driverID: {200.00},
	}}
	feeRepo := newFakeFeeRepo()
	service := newTestFeeService(t, rideRepo, feeRepo)

	registeredAt := time.Now().AddDate(0, 0, -1)
	payment, eligibility, err := service.RequestFeePayment(context.Background(), driverID, registeredAt)
	if err != nil {
		t.Fatalf("RequestFeePayment: %v", err)
	}
	if payment == nil {
		t.Fatalf("payment refused: %+v", eligibility)
	}
	if payment.Amount != 20.00 {
		t.Errorf("Amount = %v, want 20.00 (10%% of 200.00)", payment.Amount)
	}
	if payment.Status != models.FeePaymentStatusPending {
		t.Errorf("Status = %s, want pending", payment.Status)
	}
	if payment.DueDate == nil {
		t.Fatal("DueDate not set")
	}
}

func TestRequestFeePaymentLastDayInclusive(t *testing.T) {
	driverID := primitive.NewObjectID()
	rideRepo := &fakeRideRepo{completed: map[primitive.ObjectID][]float64{
		driverID: {100.00},
	}}
	service := newTestFeeService(t, rideRepo, newFakeFeeRepo())

	// Exactly at the deadline: zero days remaining still allows the request.
	registeredAt := time.Now().AddDate(0, 0, -2)
	payment, eligibility, err := service.RequestFeePayment(context.Background(), driverID, registeredAt)
	if err != nil {
		t.Fatalf("RequestFeePayment: %v", err)
	}
	if payment == nil {
		t.Fatalf("payment refused on the last day: %+v", eligibility)
	}
	if eligibility.DaysRemaining != 0 {
		t.Errorf("DaysRemaining = %d, want 0", eligibility.DaysRemaining)
	}
}

func TestRequestFeePaymentAfterDeadline(t *testing.T) {
	driverID := primitive.NewObjectID()
	rideRepo := &fakeRideRepo{completed: map[primitive.ObjectID][]float64{
		driverID: {100.00},
	}}
	service := newTestFeeService(t, rideRepo, newFakeFeeRepo())

	registeredAt := time.Now().AddDate(0, 0, -3)
	payment, eligibility, err := service.RequestFeePayment(context.Background(), driverID, registeredAt)
	if err != nil {
		t.Fatalf("RequestFeePayment: %v", err)
	}
	if payment != nil {
		t.Fatal("payment created past the deadline")
	}
	if eligibility.Reason != balance.ReasonDeadlineExpired {
		t.Errorf("Reason = %s, want %s", eligibility.Reason, balance.ReasonDeadlineExpired)
	}
	if !eligibility.Expired {
		t.Error("Expired = false, want true")
	}
}

func TestRequestFeePaymentOneAtATime(t *testing.T) {
	driverID := primitive.NewObjectID()
	rideRepo := &fakeRideRepo{completed: map[primitive.ObjectID][]float64{
		driverID: {100.00},
	}}
	feeRepo := newFakeFeeRepo()
	service := newTestFeeService(t, rideRepo, feeRepo)

	registeredAt := time.Now()
	if payment, _, err := service.RequestFeePayment(context.Background(), driverID, registeredAt); err != nil || payment == nil {
		t.Fatalf("first RequestFeePayment: payment=%v err=%v", payment, err)
	}

	payment, eligibility, err := service.RequestFeePayment(context.Background(), driverID, registeredAt)
	if err != nil {
		t.Fatalf("second RequestFeePayment: %v", err)
	}
	if payment != nil {
		t.Fatal("second concurrent fee payment was created")
	}
	if eligibility.Reason != balance.ReasonActiveFeeRequest {
		t.Errorf("Reason = %s, want %s", eligibility.Reason, balance.ReasonActiveFeeRequest)
	}
}

func TestFeePaymentReservesBalanceUntilSettled(t *testing.T) {
	driverID := primitive.NewObjectID()
	rideRepo := &fakeRideRepo{completed: map[primitive.ObjectID][]float64{
		driverID: {100.00},
	}}
	feeRepo := newFakeFeeRepo()
	log := testLogger(t)
	balanceService := NewBalanceService(rideRepo, newFakePayoutRepo(), feeRepo, log)
	service := NewFeeService(feeRepo, balanceService, nil, fees.Config{Type: models.ServiceFeeTypePercent, Value: 10}, 2, log)

	payment, _, err := service.RequestFeePayment(context.Background(), driverID, time.Now())
	if err != nil || payment == nil {
		t.Fatalf("RequestFeePayment: payment=%v err=%v", payment, err)
	}

	derived, err := balanceService.GetBalance(context.Background(), driverID)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if derived.Reserved != 10.00 {
		t.Errorf("Reserved = %v, want 10.00", derived.Reserved)
	}

	if _, err := service.MarkPaid(context.Background(), payment.ID); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}

	derived, err = balanceService.GetBalance(context.Background(), driverID)
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if derived.Reserved != 0 {
		t.Errorf("Reserved after settle = %v, want 0", derived.Reserved)
	}
}

func TestExpireOverdueSweep(t *testing.T) {
	driverID := primitive.NewObjectID()
	feeRepo := newFakeFeeRepo()
	service := newTestFeeService(t, &fakeRideRepo{}, feeRepo)

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)
	feeRepo.Create(context.Background(), &models.FeePayment{
		DriverID: driverID, Amount: 5, Status: models.FeePaymentStatusPending, DueDate: &past,
	})
	feeRepo.Create(context.Background(), &models.FeePayment{
		DriverID: driverID, Amount: 5, Status: models.FeePaymentStatusPending, DueDate: &future,
	})

	expired, err := service.ExpireOverdue(context.Background())
	if err != nil {
		t.Fatalf("ExpireOverdue: %v", err)
	}
	if expired != 1 {
		t.Errorf("expired = %d, want 1", expired)
	}

	remaining, err := feeRepo.ListByStatus(context.Background(), models.FeePaymentStatusPending)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(remaining) != 1 {
		t.Errorf("pending after sweep = %d, want 1", len(remaining))
	}
}

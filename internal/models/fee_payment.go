package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FeePaymentStatus string

const (
	FeePaymentStatusPending  FeePaymentStatus = "pending"
	FeePaymentStatusPaid     FeePaymentStatus = "paid"
	FeePaymentStatusCanceled FeePaymentStatus = "canceled"
	FeePaymentStatusExpired  FeePaymentStatus = "expired"
)

func (s FeePaymentStatus) IsTerminal() bool {
	return s == FeePaymentStatusPaid || s == FeePaymentStatusCanceled || s == FeePaymentStatusExpired
}

// ReservesBalance: fee payments have no approval step, so only pending
// requests hold their amount.
func (s FeePaymentStatus) ReservesBalance() bool {
	return s == FeePaymentStatusPending
}

// CanTransitionTo enforces pending -> {paid, canceled, expired}.
func (s FeePaymentStatus) CanTransitionTo(next FeePaymentStatus) bool {
	switch s {
	case FeePaymentStatusPending:
		return next == FeePaymentStatusPaid || next == FeePaymentStatusCanceled || next == FeePaymentStatusExpired
	case FeePaymentStatusPaid, FeePaymentStatusCanceled, FeePaymentStatusExpired:
		return false
	}
	return false
}

// FeePayment is a driver's mandatory periodic service-fee payment
// request. DueDate drives the expiry sweep; a pending payment past its
// due date is moved to expired, never resurrected.
type FeePayment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DriverID  primitive.ObjectID `json:"driver_id" bson:"driver_id" validate:"required"`
	Amount    float64            `json:"amount" bson:"amount" validate:"required,gt=0"`
	Currency  string             `json:"currency" bson:"currency" default:"BRL"`
	Status    FeePaymentStatus   `json:"status" bson:"status" default:"pending"`
	Fee       *FeeBreakdown      `json:"fee" bson:"fee"`
	DueDate   *time.Time         `json:"due_date" bson:"due_date"`
	PaidAt    *time.Time         `json:"paid_at" bson:"paid_at"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PayoutStatus string

const (
	PayoutStatusPending  PayoutStatus = "pending"
	PayoutStatusApproved PayoutStatus = "approved"
	PayoutStatusRejected PayoutStatus = "rejected"
	PayoutStatusPaid     PayoutStatus = "paid"
)

// IsTerminal reports whether the status admits no further transition.
func (s PayoutStatus) IsTerminal() bool {
	return s == PayoutStatusPaid || s == PayoutStatusRejected
}

// ReservesBalance reports whether a request in this status holds its
// amount against the driver's available balance.
func (s PayoutStatus) ReservesBalance() bool {
	return s == PayoutStatusPending || s == PayoutStatusApproved
}

// CanTransitionTo enforces the one-directional payout lifecycle:
// pending -> approved -> paid, or pending -> rejected. Terminal
// requests stay terminal.
func (s PayoutStatus) CanTransitionTo(next PayoutStatus) bool {
	switch s {
	case PayoutStatusPending:
		return next == PayoutStatusApproved || next == PayoutStatusRejected
	case PayoutStatusApproved:
		return next == PayoutStatusPaid
	case PayoutStatusRejected, PayoutStatusPaid:
		return false
	}
	return false
}

// FeeBreakdown snapshots the service-fee math applied to a request at
// creation time, so later configuration edits never change what was
// charged. NetAmount = GrossAmount - ChargedAmount.
type FeeBreakdown struct {
	Type          ServiceFeeType `json:"type" bson:"type"`
	Value         float64        `json:"value" bson:"value"`
	GrossAmount   float64        `json:"gross_amount" bson:"gross_amount"`
	ChargedAmount float64        `json:"charged_amount" bson:"charged_amount"`
	NetAmount     float64        `json:"net_amount" bson:"net_amount"`
}

// PayoutRequest is a driver-initiated withdrawal. The requested amount
// is reserved against the balance while pending or approved.
type PayoutRequest struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DriverID      primitive.ObjectID `json:"driver_id" bson:"driver_id" validate:"required"`
	Amount        float64            `json:"amount" bson:"amount" validate:"required,gt=0"`
	Currency      string             `json:"currency" bson:"currency" default:"BRL"`
	Status        PayoutStatus       `json:"status" bson:"status" default:"pending"`
	Fee           *FeeBreakdown      `json:"fee" bson:"fee"`
	TransferID    string             `json:"transfer_id" bson:"transfer_id"`
	RejectReason  string             `json:"reject_reason" bson:"reject_reason"`
	ProcessedAt   *time.Time         `json:"processed_at" bson:"processed_at"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

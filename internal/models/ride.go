package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideStatus string

const (
	RideStatusRequested RideStatus = "requested"
	RideStatusAccepted  RideStatus = "accepted"
	RideStatusOngoing   RideStatus = "ongoing"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// Ride is the ledger entry this service cares about: who drove, what it
// cost, and whether it completed. Only completed rides earn.
type Ride struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DriverID        primitive.ObjectID `json:"driver_id" bson:"driver_id" validate:"required"`
	RiderID         primitive.ObjectID `json:"rider_id" bson:"rider_id" validate:"required"`
	ServiceType     ServiceType        `json:"service_type" bson:"service_type" validate:"required"`
	Region          string             `json:"region" bson:"region"`
	DistanceKm      float64            `json:"distance_km" bson:"distance_km"`
	SurgeMultiplier float64            `json:"surge_multiplier" bson:"surge_multiplier" default:"1.0"`
	FinalPrice      float64            `json:"final_price" bson:"final_price"`
	Currency        string             `json:"currency" bson:"currency" default:"BRL"`
	Status          RideStatus         `json:"status" bson:"status" default:"requested"`
	CompletedAt     *time.Time         `json:"completed_at" bson:"completed_at"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

func (r *Ride) Earns() bool {
	return r.Status == RideStatusCompleted
}

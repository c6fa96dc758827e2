package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AvailabilityRule defines when and where a service type is offered and
// the surge multiplier applied inside that window. Weekdays use ISO
// numbering: 1 = Monday .. 7 = Sunday. TimeStart/TimeEnd are local
// times of day in "HH:MM".
type AvailabilityRule struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ServiceType     ServiceType        `json:"service_type" bson:"service_type" validate:"required"`
	Region          string             `json:"region" bson:"region" validate:"required"`
	Weekdays        []int              `json:"weekdays" bson:"weekdays" validate:"required,min=1"`
	TimeStart       string             `json:"time_start" bson:"time_start" validate:"required"`
	TimeEnd         string             `json:"time_end" bson:"time_end" validate:"required"`
	SurgeMultiplier float64            `json:"surge_multiplier" bson:"surge_multiplier" validate:"min=1"`
	IsActive        bool               `json:"is_active" bson:"is_active" default:"true"`
	Notes           string             `json:"notes" bson:"notes"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// Covers reports whether the rule's window contains the given local
// time. Both the weekday and the time-of-day interval must match; the
// end time is exclusive.
func (r *AvailabilityRule) Covers(t time.Time) bool {
	if !r.IsActive {
		return false
	}

	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday as 7
	}

	found := false
	for _, d := range r.Weekdays {
		if d == weekday {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	clock := t.Format("15:04")
	return clock >= r.TimeStart && clock < r.TimeEnd
}

package validators

import (
	"fmt"

	"motora/internal/models"
	"motora/internal/utils"
)

type CreateAvailabilityRuleRequest struct {
	ServiceType     string  `json:"service_type" validate:"required,service_type"`
	Region          string  `json:"region" validate:"required,min=2,max=100"`
	Weekdays        []int   `json:"weekdays" validate:"required,min=1,max=7,dive,min=1,max=7"`
	TimeStart       string  `json:"time_start" validate:"required,clock_time"`
	TimeEnd         string  `json:"time_end" validate:"required,clock_time"`
	SurgeMultiplier float64 `json:"surge_multiplier" validate:"omitempty,surge"`
	IsActive        *bool   `json:"is_active"`
	Notes           string  `json:"notes" validate:"omitempty,max=255"`
}

type UpdateAvailabilityRuleRequest struct {
	Weekdays        []int    `json:"weekdays" validate:"omitempty,min=1,max=7,dive,min=1,max=7"`
	TimeStart       *string  `json:"time_start" validate:"omitempty,clock_time"`
	TimeEnd         *string  `json:"time_end" validate:"omitempty,clock_time"`
	SurgeMultiplier *float64 `json:"surge_multiplier" validate:"omitempty,surge"`
	IsActive        *bool    `json:"is_active"`
	Notes           *string  `json:"notes" validate:"omitempty,max=255"`
}

// ValidateAvailabilityRule checks the cross-field constraints: ISO
// weekdays, a well-ordered time window, and the surge clamp.
func ValidateAvailabilityRule(rule *models.AvailabilityRule) ValidationErrors {
	var errs ValidationErrors

	if !rule.ServiceType.IsValid() {
		errs = append(errs, ValidationError{
			Field: "service_type", Tag: "service_type",
			Value: string(rule.ServiceType), Message: "Unknown service type",
		})
	}
	if rule.Region == "" {
		errs = append(errs, ValidationError{
			Field: "region", Tag: "required", Message: "region is required",
		})
	}
	if len(rule.Weekdays) == 0 {
		errs = append(errs, ValidationError{
			Field: "weekdays", Tag: "required", Message: "at least one weekday is required",
		})
	}
	for _, d := range rule.Weekdays {
		if d < 1 || d > 7 {
			errs = append(errs, ValidationError{
				Field: "weekdays", Tag: "range",
				Value:   fmt.Sprintf("%d", d),
				Message: "weekdays use ISO numbering, 1 (Monday) through 7 (Sunday)",
			})
			break
		}
	}
	if err := utils.ValidateClockRange(rule.TimeStart, rule.TimeEnd); err != nil {
		errs = append(errs, ValidationError{
			Field: "time_start", Tag: "clock_time", Message: err.Error(),
		})
	}
	if rule.SurgeMultiplier < utils.MinSurgeMultiplier || rule.SurgeMultiplier > utils.MaxSurgeMultiplier {
		errs = append(errs, ValidationError{
			Field: "surge_multiplier", Tag: "surge",
			Value: fmt.Sprintf("%.2f", rule.SurgeMultiplier),
			Message: fmt.Sprintf("surge multiplier must be between %.1f and %.1f",
				utils.MinSurgeMultiplier, utils.MaxSurgeMultiplier),
		})
	}

	return errs
}

package validators

import (
	"fmt"
	"strings"

	"motora/internal/models"
	"motora/internal/utils"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("service_type", validateServiceType)
	validate.RegisterValidation("fee_type", validateFeeType)
	validate.RegisterValidation("clock_time", validateClockTime)
	validate.RegisterValidation("surge", validateSurge)
	validate.RegisterValidation("amount", validateAmount)
	validate.RegisterValidation("distance", validateDistance)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// NewValidationError wraps a non-empty error list so services can
// return it as a plain error.
func NewValidationError(errs ValidationErrors) error {
	return errs
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
	case "object_id":
		return "Invalid ID format"
	case "service_type":
		return "Unknown service type"
	case "fee_type":
		return "Fee type must be fixed or percent"
	case "clock_time":
		return "Time must be HH:MM"
	case "surge":
		return fmt.Sprintf("Surge multiplier must be between %.1f and %.1f", utils.MinSurgeMultiplier, utils.MaxSurgeMultiplier)
	case "amount":
		return "Amount must be a positive currency value"
	case "distance":
		return fmt.Sprintf("Distance must be between 0 and %.0f km", utils.MaxQuoteDistanceKm)
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let required tag handle empty values
	}
	_, err := primitive.ObjectIDFromHex(value)
	return err == nil
}

func validateServiceType(fl validator.FieldLevel) bool {
	return models.ServiceType(fl.Field().String()).IsValid()
}

func validateFeeType(fl validator.FieldLevel) bool {
	return models.ServiceFeeType(fl.Field().String()).IsValid()
}

func validateClockTime(fl validator.FieldLevel) bool {
	return utils.ValidateClockTime(fl.Field().String())
}

func validateSurge(fl validator.FieldLevel) bool {
	value := fl.Field().Float()
	return value >= utils.MinSurgeMultiplier && value <= utils.MaxSurgeMultiplier
}

func validateAmount(fl validator.FieldLevel) bool {
	value := fl.Field().Float()
	return value > 0 && value <= 1_000_000
}

func validateDistance(fl validator.FieldLevel) bool {
	value := fl.Field().Float()
	return value >= 0 && value <= utils.MaxQuoteDistanceKm
}

package handlers

import (
	"net/http"

	"motora/internal/models"
	"motora/internal/services"
	"motora/internal/utils"
	"motora/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PricingHandler is the admin surface for pricing configurations and
// availability rules. Every write invalidates the cached configuration
// and pushes a recompute signal to connected clients.
type PricingHandler struct {
	pricingService *services.PricingService
}

func NewPricingHandler(pricingService *services.PricingService) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
	}
}

func (h *PricingHandler) CreatePricingConfig(c *gin.Context) {
	var request validators.CreatePricingConfigRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid pricing configuration", validationDetails(errs))
		return
	}

	config := &models.PricingConfiguration{
		ServiceType:        models.ServiceType(request.ServiceType),
		Region:             request.Region,
		PerKilometerRate:   request.PerKilometerRate,
		PerKilometerActive: request.PerKilometerActive,
		FixedPrice:         request.FixedPrice,
		FixedPriceActive:   request.FixedPriceActive,
		ServiceFeeType:     models.ServiceFeeType(request.ServiceFeeType),
		ServiceFeeValue:    request.ServiceFeeValue,
		Currency:           utils.DefaultCurrency,
		IsActive:           true,
	}
	if request.IsActive != nil {
		config.IsActive = *request.IsActive
	}
	if config.ServiceFeeType == "" {
		config.ServiceFeeType = models.ServiceFeeTypePercent
	}

	if err := h.pricingService.CreatePricingConfig(c.Request.Context(), config); err != nil {
		if errs, ok := err.(validators.ValidationErrors); ok {
			utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid pricing configuration", validationDetails(errs))
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "PRICING_CREATE_FAILED", "Failed to create pricing configuration: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Pricing configuration created", config)
}

func (h *PricingHandler) GetPricingConfig(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	config, err := h.pricingService.GetPricingConfig(c.Request.Context(), id)
	if err != nil {
		utils.NotFoundResponse(c, "Pricing configuration")
		return
	}

	utils.SuccessResponse(c, "Pricing configuration", config)
}

func (h *PricingHandler) ListPricingConfigs(c *gin.Context) {
	configs, err := h.pricingService.ListPricingConfigs(c.Request.Context(), c.Query("region"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PRICING_LIST_FAILED", "Failed to list pricing configurations: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Pricing configurations", configs)
}

func (h *PricingHandler) UpdatePricingConfig(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.UpdatePricingConfigRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid pricing update", validationDetails(errs))
		return
	}

	updates := map[string]interface{}{}
	if request.PerKilometerRate != nil {
		updates["per_kilometer_rate"] = *request.PerKilometerRate
	}
	if request.PerKilometerActive != nil {
		updates["per_kilometer_active"] = *request.PerKilometerActive
	}
	if request.FixedPrice != nil {
		updates["fixed_price"] = *request.FixedPrice
	}
	if request.FixedPriceActive != nil {
		updates["fixed_price_active"] = *request.FixedPriceActive
	}
	if request.ServiceFeeType != nil {
		updates["service_fee_type"] = *request.ServiceFeeType
	}
	if request.ServiceFeeValue != nil {
		updates["service_fee_value"] = *request.ServiceFeeValue
	}
	if request.IsActive != nil {
		updates["is_active"] = *request.IsActive
	}
	if len(updates) == 0 {
		utils.BadRequestResponse(c, "No fields to update")
		return
	}

	config, err := h.pricingService.UpdatePricingConfig(c.Request.Context(), id, updates)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PRICING_UPDATE_FAILED", "Failed to update pricing configuration: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Pricing configuration updated", config)
}

func (h *PricingHandler) DeletePricingConfig(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.pricingService.DeletePricingConfig(c.Request.Context(), id); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PRICING_DELETE_FAILED", "Failed to delete pricing configuration: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Pricing configuration deleted", nil)
}

func (h *PricingHandler) CreateAvailabilityRule(c *gin.Context) {
	var request validators.CreateAvailabilityRuleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid availability rule", validationDetails(errs))
		return
	}

	rule := &models.AvailabilityRule{
		ServiceType:     models.ServiceType(request.ServiceType),
		Region:          request.Region,
		Weekdays:        request.Weekdays,
		TimeStart:       request.TimeStart,
		TimeEnd:         request.TimeEnd,
		SurgeMultiplier: request.SurgeMultiplier,
		IsActive:        true,
		Notes:           request.Notes,
	}
	if request.IsActive != nil {
		rule.IsActive = *request.IsActive
	}
	if rule.SurgeMultiplier == 0 {
		rule.SurgeMultiplier = utils.MinSurgeMultiplier
	}

	if err := h.pricingService.CreateAvailabilityRule(c.Request.Context(), rule); err != nil {
		if errs, ok := err.(validators.ValidationErrors); ok {
			utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid availability rule", validationDetails(errs))
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "AVAILABILITY_CREATE_FAILED", "Failed to create availability rule: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Availability rule created", rule)
}

func (h *PricingHandler) ListAvailabilityRules(c *gin.Context) {
	rules, err := h.pricingService.ListAvailabilityRules(c.Request.Context(), c.Query("region"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "AVAILABILITY_LIST_FAILED", "Failed to list availability rules: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Availability rules", rules)
}

func (h *PricingHandler) UpdateAvailabilityRule(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.UpdateAvailabilityRuleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid availability update", validationDetails(errs))
		return
	}

	updates := map[string]interface{}{}
	if len(request.Weekdays) > 0 {
		updates["weekdays"] = request.Weekdays
	}
	if request.TimeStart != nil {
		updates["time_start"] = *request.TimeStart
	}
	if request.TimeEnd != nil {
		updates["time_end"] = *request.TimeEnd
	}
	if request.SurgeMultiplier != nil {
		updates["surge_multiplier"] = *request.SurgeMultiplier
	}
	if request.IsActive != nil {
		updates["is_active"] = *request.IsActive
	}
	if request.Notes != nil {
		updates["notes"] = *request.Notes
	}
	if len(updates) == 0 {
		utils.BadRequestResponse(c, "No fields to update")
		return
	}

	rule, err := h.pricingService.UpdateAvailabilityRule(c.Request.Context(), id, updates)
	if err != nil {
		if errs, ok := err.(validators.ValidationErrors); ok {
			utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid availability update", validationDetails(errs))
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "AVAILABILITY_UPDATE_FAILED", "Failed to update availability rule: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Availability rule updated", rule)
}

func (h *PricingHandler) DeleteAvailabilityRule(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.pricingService.DeleteAvailabilityRule(c.Request.Context(), id); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "AVAILABILITY_DELETE_FAILED", "Failed to delete availability rule: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Availability rule deleted", nil)
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

func validationDetails(errs validators.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, e := range errs {
		details[e.Field] = e.Message
	}
	return details
}

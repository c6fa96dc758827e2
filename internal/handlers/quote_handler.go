package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"motora/internal/models"
	"motora/internal/pricing"
	"motora/internal/services"
	"motora/internal/utils"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	pricingService *services.PricingService
}

func NewQuoteHandler(pricingService *services.PricingService) *QuoteHandler {
	return &QuoteHandler{
		pricingService: pricingService,
	}
}

// GetQuote computes a price estimate. Distance comes in either as
// distance_km or as a negotiation offer_cents integer; cents are
// converted to currency units before any pricing math runs.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	serviceType := models.ServiceType(c.Query("service_type"))
	if !serviceType.IsValid() {
		utils.BadRequestResponse(c, "Invalid or missing service_type")
		return
	}

	region := c.Query("region")
	if region == "" {
		utils.BadRequestResponse(c, "region is required")
		return
	}

	at := time.Now()
	if atStr := c.Query("at"); atStr != "" {
		parsed, err := utils.ParseTimeISO(atStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid at timestamp, expected RFC3339")
			return
		}
		at = parsed
	}

	var quote *models.RideQuote
	var err error
	switch {
	case c.Query("distance_km") != "":
		distanceKm, parseErr := strconv.ParseFloat(c.Query("distance_km"), 64)
		if parseErr != nil || distanceKm < 0 || distanceKm > utils.MaxQuoteDistanceKm {
			utils.BadRequestResponse(c, "distance_km must be a number between 0 and 500")
			return
		}
		quote, err = h.pricingService.GetQuote(c.Request.Context(), serviceType, region, distanceKm, at)
	case c.Query("offer_cents") != "":
		cents, parseErr := strconv.ParseInt(c.Query("offer_cents"), 10, 64)
		if parseErr != nil || cents < 0 {
			utils.BadRequestResponse(c, "offer_cents must be a non-negative integer")
			return
		}
		quote, err = h.pricingService.QuoteFromOffer(c.Request.Context(), serviceType, region, cents, at)
	default:
		utils.BadRequestResponse(c, "Either distance_km or offer_cents is required")
		return
	}

	if err != nil {
		if errors.Is(err, pricing.ErrServiceUnavailable) {
			utils.UnprocessableResponse(c, "SERVICE_UNAVAILABLE", "Service type is not available at the requested time")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "QUOTE_FAILED", "Failed to compute quote: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Quote computed successfully", quote)
}

// GetAvailableServiceTypes lists what can be booked in a region right now.
func (h *QuoteHandler) GetAvailableServiceTypes(c *gin.Context) {
	region := c.Query("region")
	if region == "" {
		utils.BadRequestResponse(c, "region is required")
		return
	}

	available, err := h.pricingService.AvailableServiceTypes(c.Request.Context(), region, time.Now())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "AVAILABILITY_FAILED", "Failed to check availability: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Available service types", gin.H{
		"region":        region,
		"service_types": available,
	})
}


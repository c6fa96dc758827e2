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

// RideHandler is the ledger ingest surface, used by the dispatch
// system to record rides and completions that drive driver earnings.
type RideHandler struct {
	rideService *services.RideService
}

func NewRideHandler(rideService *services.RideService) *RideHandler {
	return &RideHandler{
		rideService: rideService,
	}
}

func (h *RideHandler) RecordRide(c *gin.Context) {
	var request validators.RecordRideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid ride", validationDetails(errs))
		return
	}

	driverID, _ := primitive.ObjectIDFromHex(request.DriverID)
	riderID, _ := primitive.ObjectIDFromHex(request.RiderID)

	ride := &models.Ride{
		DriverID:        driverID,
		RiderID:         riderID,
		ServiceType:     models.ServiceType(request.ServiceType),
		Region:          request.Region,
		DistanceKm:      request.DistanceKm,
		SurgeMultiplier: request.SurgeMultiplier,
	}

	if err := h.rideService.RecordRide(c.Request.Context(), ride); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "RIDE_CREATE_FAILED", "Failed to record ride: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Ride recorded", ride)
}

// CompleteRide marks a ride completed with its final price, which
// becomes part of the driver's earnings.
func (h *RideHandler) CompleteRide(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.CompleteRideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid completion", validationDetails(errs))
		return
	}

	ride, err := h.rideService.CompleteRide(c.Request.Context(), id, request.FinalPrice)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "RIDE_COMPLETE_FAILED", "Failed to complete ride: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Ride completed", ride)
}

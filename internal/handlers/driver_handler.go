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

// DriverHandler is the driver-facing money surface: balance, payout
// requests, and mandatory fee payments. The driver identity always
// comes from the auth context, never from the payload.
type DriverHandler struct {
	balanceService *services.BalanceService
	payoutService  *services.PayoutService
	feeService     *services.FeeService
	rideService    *services.RideService
}

func NewDriverHandler(
	balanceService *services.BalanceService,
	payoutService *services.PayoutService,
	feeService *services.FeeService,
	rideService *services.RideService,
) *DriverHandler {
	return &DriverHandler{
		balanceService: balanceService,
		payoutService:  payoutService,
		feeService:     feeService,
		rideService:    rideService,
	}
}

func driverFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	driverID, ok := userID.(primitive.ObjectID)
	if !ok {
		utils.BadRequestResponse(c, "Invalid user ID")
		return primitive.NilObjectID, false
	}
	return driverID, true
}

// GetBalance derives the driver's balance from the ledgers.
func (h *DriverHandler) GetBalance(c *gin.Context) {
	driverID, ok := driverFromContext(c)
	if !ok {
		return
	}

	balance, err := h.balanceService.GetBalance(c.Request.Context(), driverID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "BALANCE_FAILED", "Failed to compute balance: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Driver balance", gin.H{
		"balance":             balance,
		"formatted_available": utils.FormatBRL(balance.Available),
	})
}

// RequestPayout opens a withdrawal request. An ineligible request is a
// 200 with allowed=false and a reason, not an error: the app renders
// the decision directly.
func (h *DriverHandler) RequestPayout(c *gin.Context) {
	driverID, ok := driverFromContext(c)
	if !ok {
		return
	}

	var request validators.WithdrawalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid withdrawal request", validationDetails(errs))
		return
	}

	payout, decision, err := h.payoutService.RequestWithdrawal(
		c.Request.Context(), driverID, request.Amount,
		models.ServiceType(request.ServiceType), request.Region,
	)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PAYOUT_REQUEST_FAILED", "Failed to request payout: "+err.Error())
		return
	}
	if payout == nil {
		utils.SuccessResponse(c, "Withdrawal not allowed", gin.H{"decision": decision})
		return
	}

	utils.CreatedResponse(c, "Payout requested", gin.H{
		"payout":   payout,
		"decision": decision,
	})
}

// PreviewPayout runs the eligibility check without creating a request.
func (h *DriverHandler) PreviewPayout(c *gin.Context) {
	driverID, ok := driverFromContext(c)
	if !ok {
		return
	}

	var request validators.WithdrawalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid withdrawal request", validationDetails(errs))
		return
	}

	decision, err := h.payoutService.PreviewWithdrawal(
		c.Request.Context(), driverID, request.Amount,
		models.ServiceType(request.ServiceType), request.Region,
	)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PAYOUT_PREVIEW_FAILED", "Failed to preview payout: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Withdrawal preview", gin.H{"decision": decision})
}

func (h *DriverHandler) ListPayouts(c *gin.Context) {
	driverID, ok := driverFromContext(c)
	if !ok {
		return
	}

	payouts, err := h.payoutService.ListDriverPayouts(c.Request.Context(), driverID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PAYOUT_LIST_FAILED", "Failed to list payouts: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Driver payouts", payouts)
}

// GetFeeEligibility reports whether the driver can still open a fee
// payment inside the deadline window.
func (h *DriverHandler) GetFeeEligibility(c *gin.Context) {
	driverID, ok := driverFromContext(c)
	if !ok {
		return
	}

	registeredAt, err := utils.ParseTimeISO(c.Query("registered_at"))
	if err != nil {
		utils.BadRequestResponse(c, "registered_at is required, RFC3339")
		return
	}

	eligibility, err := h.feeService.Eligibility(c.Request.Context(), driverID, registeredAt)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "FEE_ELIGIBILITY_FAILED", "Failed to check fee eligibility: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Fee eligibility", eligibility)
}

func (h *DriverHandler) RequestFeePayment(c *gin.Context) {
	driverID, ok := driverFromContext(c)
	if !ok {
		return
	}

	var request validators.FeePaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	registeredAt, err := utils.ParseTimeISO(request.RegisteredAt)
	if err != nil {
		utils.BadRequestResponse(c, "registered_at must be RFC3339")
		return
	}

	payment, eligibility, err := h.feeService.RequestFeePayment(c.Request.Context(), driverID, registeredAt)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "FEE_REQUEST_FAILED", "Failed to request fee payment: "+err.Error())
		return
	}
	if payment == nil {
		utils.SuccessResponse(c, "Fee payment not allowed", gin.H{"eligibility": eligibility})
		return
	}

	utils.CreatedResponse(c, "Fee payment requested", gin.H{
		"payment":     payment,
		"eligibility": eligibility,
	})
}

func (h *DriverHandler) ListFeePayments(c *gin.Context) {
	driverID, ok := driverFromContext(c)
	if !ok {
		return
	}

	payments, err := h.feeService.ListDriverFeePayments(c.Request.Context(), driverID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "FEE_LIST_FAILED", "Failed to list fee payments: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Driver fee payments", payments)
}

// ListRides returns the driver's ride ledger, newest first.
func (h *DriverHandler) ListRides(c *gin.Context) {
	driverID, ok := driverFromContext(c)
	if !ok {
		return
	}

	rides, err := h.rideService.ListDriverRides(c.Request.Context(), driverID, 100)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "RIDE_LIST_FAILED", "Failed to list rides: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Driver rides", rides)
}

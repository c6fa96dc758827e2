package handlers

import (
	"errors"
	"net/http"

	"motora/internal/models"
	"motora/internal/repositories/mongodb"
	"motora/internal/services"
	"motora/internal/utils"
	"motora/internal/validators"

	"github.com/gin-gonic/gin"
)

// SettlementHandler is the admin settlement surface: reviewing payout
// requests, executing transfers, and managing fee payments.
type SettlementHandler struct {
	payoutService *services.PayoutService
	feeService    *services.FeeService
}

func NewSettlementHandler(payoutService *services.PayoutService, feeService *services.FeeService) *SettlementHandler {
	return &SettlementHandler{
		payoutService: payoutService,
		feeService:    feeService,
	}
}

func (h *SettlementHandler) ListPayouts(c *gin.Context) {
	status := models.PayoutStatus(c.DefaultQuery("status", string(models.PayoutStatusPending)))
	payouts, err := h.payoutService.ListPayoutsByStatus(c.Request.Context(), status)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PAYOUT_LIST_FAILED", "Failed to list payouts: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Payout requests", payouts)
}

func (h *SettlementHandler) ApprovePayout(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	payout, err := h.payoutService.Approve(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongodb.ErrStatusConflict) {
			utils.ConflictResponse(c, "Payout request is not pending")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "PAYOUT_APPROVE_FAILED", "Failed to approve payout: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Payout approved", payout)
}

func (h *SettlementHandler) RejectPayout(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.RejectPayoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid rejection", validationDetails(errs))
		return
	}

	payout, err := h.payoutService.Reject(c.Request.Context(), id, request.Reason)
	if err != nil {
		if errors.Is(err, mongodb.ErrStatusConflict) {
			utils.ConflictResponse(c, "Payout request is not pending")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "PAYOUT_REJECT_FAILED", "Failed to reject payout: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Payout rejected", payout)
}

// PayPayout executes the transfer for an approved request and marks it
// paid. A gateway failure leaves the request approved for retry.
func (h *SettlementHandler) PayPayout(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var request validators.ExecutePayoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid payout execution", validationDetails(errs))
		return
	}

	payout, err := h.payoutService.ExecutePayout(c.Request.Context(), id, request.DestinationAccount)
	if err != nil {
		if errors.Is(err, mongodb.ErrStatusConflict) {
			utils.ConflictResponse(c, "Payout request is not approved")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "PAYOUT_EXECUTE_FAILED", "Failed to execute payout: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Payout executed", payout)
}

func (h *SettlementHandler) ListFeePayments(c *gin.Context) {
	status := models.FeePaymentStatus(c.DefaultQuery("status", string(models.FeePaymentStatusPending)))
	payments, err := h.feeService.ListFeePaymentsByStatus(c.Request.Context(), status)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "FEE_LIST_FAILED", "Failed to list fee payments: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Fee payments", payments)
}

func (h *SettlementHandler) MarkFeePaid(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.feeService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongodb.ErrStatusConflict) {
			utils.ConflictResponse(c, "Fee payment is not pending")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "FEE_PAY_FAILED", "Failed to mark fee payment paid: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Fee payment marked paid", payment)
}

func (h *SettlementHandler) CancelFeePayment(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.feeService.Cancel(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongodb.ErrStatusConflict) {
			utils.ConflictResponse(c, "Fee payment is not pending")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "FEE_CANCEL_FAILED", "Failed to cancel fee payment: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Fee payment canceled", payment)
}

// ExpireFees runs the overdue sweep on demand.
func (h *SettlementHandler) ExpireFees(c *gin.Context) {
	expired, err := h.feeService.ExpireOverdue(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "FEE_EXPIRE_FAILED", "Failed to expire fee payments: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Overdue fee payments expired", gin.H{"expired": expired})
}

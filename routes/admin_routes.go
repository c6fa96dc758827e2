package routes

import (
	"motora/internal/handlers"
	"motora/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSettlementRoutes sets up the admin settlement routes: payout
// review and execution, fee payment management, and ride ledger ingest.
func SetupSettlementRoutes(r *gin.RouterGroup, secretKey string, settlementHandler *handlers.SettlementHandler, rideHandler *handlers.RideHandler) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(secretKey), middleware.AdminRequired())
	{
		payouts := admin.Group("/payouts")
		{
			payouts.GET("", settlementHandler.ListPayouts)
			payouts.PUT("/:id/approve", settlementHandler.ApprovePayout)
			payouts.PUT("/:id/reject", settlementHandler.RejectPayout)
			payouts.PUT("/:id/pay", settlementHandler.PayPayout)
		}

		fees := admin.Group("/fees")
		{
			fees.GET("", settlementHandler.ListFeePayments)
			fees.PUT("/:id/pay", settlementHandler.MarkFeePaid)
			fees.PUT("/:id/cancel", settlementHandler.CancelFeePayment)
			fees.POST("/expire", settlementHandler.ExpireFees)
		}

		rides := admin.Group("/rides")
		{
			rides.POST("", rideHandler.RecordRide)
			rides.PUT("/:id/complete", rideHandler.CompleteRide)
		}
	}
}

package routes

import (
	"motora/internal/handlers"
	"motora/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupDriverRoutes sets up the driver-facing money routes.
func SetupDriverRoutes(r *gin.RouterGroup, secretKey string, driverHandler *handlers.DriverHandler) {
	driver := r.Group("/driver")
	driver.Use(middleware.AuthRequired(secretKey), middleware.DriverRequired())
	{
		driver.GET("/balance", driverHandler.GetBalance)
		driver.GET("/rides", driverHandler.ListRides)

		payouts := driver.Group("/payouts")
		{
			payouts.POST("", driverHandler.RequestPayout)
			payouts.POST("/preview", driverHandler.PreviewPayout)
			payouts.GET("", driverHandler.ListPayouts)
		}

		fees := driver.Group("/fees")
		{
			fees.GET("/eligibility", driverHandler.GetFeeEligibility)
			fees.POST("", driverHandler.RequestFeePayment)
			fees.GET("", driverHandler.ListFeePayments)
		}
	}
}

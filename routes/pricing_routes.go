package routes

import (
	"motora/internal/handlers"
	"motora/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPricingRoutes sets up quote and admin pricing routes.
func SetupPricingRoutes(r *gin.RouterGroup, secretKey string, quoteHandler *handlers.QuoteHandler, pricingHandler *handlers.PricingHandler) {
	// Quote routes require authentication but no specific role: riders
	// quote before booking, drivers check their own market.
	quotes := r.Group("/quotes")
	quotes.Use(middleware.AuthRequired(secretKey))
	{
		quotes.GET("", quoteHandler.GetQuote)
		quotes.GET("/service-types", quoteHandler.GetAvailableServiceTypes)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(secretKey), middleware.AdminRequired())
	{
		pricing := admin.Group("/pricing")
		{
			pricing.POST("", pricingHandler.CreatePricingConfig)
			pricing.GET("", pricingHandler.ListPricingConfigs)
			pricing.GET("/:id", pricingHandler.GetPricingConfig)
			pricing.PUT("/:id", pricingHandler.UpdatePricingConfig)
			pricing.DELETE("/:id", pricingHandler.DeletePricingConfig)
		}

		availability := admin.Group("/availability")
		{
			availability.POST("", pricingHandler.CreateAvailabilityRule)
			availability.GET("", pricingHandler.ListAvailabilityRules)
			availability.PUT("/:id", pricingHandler.UpdateAvailabilityRule)
			availability.DELETE("/:id", pricingHandler.DeleteAvailabilityRule)
		}
	}
}

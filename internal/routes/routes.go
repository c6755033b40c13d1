package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mesametamaarkhan/theekkardo/internal/handlers"
	"github.com/mesametamaarkhan/theekkardo/internal/middleware"
)

// RegisterRoutes registers all HTTP routes. Every group sits behind
// AuthMiddleware; role restrictions live on individual routes.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	api.Use(middleware.AuthMiddleware())
	{
		serviceRequests := api.Group("/service-request")
		{
			appHandlers.Requests.RegisterRoutes(serviceRequests)
			appHandlers.Bids.RegisterRoutes(serviceRequests)
		}

		services := api.Group("/services")
		{
			appHandlers.Catalog.RegisterRoutes(services)
		}

		notifications := api.Group("/notifications")
		{
			appHandlers.Notifications.RegisterRoutes(notifications)
		}

		reviews := api.Group("/review")
		{
			appHandlers.Reviews.RegisterRoutes(reviews)
		}
	}
}

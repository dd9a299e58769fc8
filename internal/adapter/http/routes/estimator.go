package routes

import (
	"product_estimator/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimates       = "/estimates"
	PathProducts        = "/products"
	PathCustomerDetails = "/customer-details"
)

func addEstimatorRoutes(
	rg *gin.RouterGroup,
	estimateHandler *handlers.EstimateHandler,
	productHandler *handlers.ProductHandler,
	sessionHandler *handlers.SessionHandler,
) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.GET("", estimateHandler.ListEstimates)
		estimates.POST("", estimateHandler.CreateEstimate)
		estimates.GET("/:estimate_id", estimateHandler.GetEstimate)
		estimates.PATCH("/:estimate_id", estimateHandler.RenameEstimate)
		estimates.DELETE("/:estimate_id", estimateHandler.DeleteEstimate)

		estimates.GET("/:estimate_id/rooms", estimateHandler.ListRooms)
		estimates.POST("/:estimate_id/rooms", estimateHandler.CreateRoom)
		estimates.PATCH("/:estimate_id/rooms/:room_id", estimateHandler.RenameRoom)
		estimates.DELETE("/:estimate_id/rooms/:room_id", estimateHandler.DeleteRoom)
	}

	room := estimates.Group("/:estimate_id/rooms/:room_id")
	{
		room.POST("/products", productHandler.AddProduct)
		room.PUT("/products/:product_id/replace", productHandler.ReplaceProduct)
		room.DELETE("/products/:product_id", productHandler.RemoveProduct)
		room.GET("/suggestions", productHandler.GetSuggestions)
	}

	rg.GET(PathProducts+"/:product_id/similar", productHandler.GetSimilarProducts)

	rg.GET(PathCustomerDetails, sessionHandler.GetCustomerDetails)
	rg.PUT(PathCustomerDetails, sessionHandler.UpdateCustomerDetails)
	rg.DELETE("/storage", sessionHandler.ClearStorage)
	rg.DELETE("/cache", sessionHandler.ClearCache)
	rg.GET("/sync/events", sessionHandler.SyncEvents)
}

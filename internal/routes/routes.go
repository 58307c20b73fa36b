package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/danieljproctor94-cmd/Fitness-App-sub001/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	sweepHandler *handlers.SweepHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	notificationHandler *handlers.NotificationHandler,
	taskHandler *handlers.TaskHandler,
) *gin.Engine {
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	// Invoked by the hosted cron, not by browsers.
	r.POST("/internal/sweep", sweepHandler.Run)

	api := r.Group("/api")
	{
		api.POST("/push/subscriptions", subscriptionHandler.Register)
		api.DELETE("/push/subscriptions", subscriptionHandler.Unregister)
		api.GET("/notifications", notificationHandler.List)
		api.POST("/notifications/:id/read", notificationHandler.MarkRead)
		api.GET("/tasks/:id/occurrences", taskHandler.Occurrences)
	}

	return r
}

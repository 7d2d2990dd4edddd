package api

import (
	"net/http"

	activityDelivery "missioncontrol-backend/internal/activity/delivery"
	taskDelivery "missioncontrol-backend/internal/task/delivery"
	usageDelivery "missioncontrol-backend/internal/usage/delivery"
	webhookDelivery "missioncontrol-backend/internal/webhook/delivery"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every endpoint under /api
func SetupRoutes(
	r *gin.Engine,
	taskHandler *taskDelivery.TaskHandler,
	recurringHandler *taskDelivery.RecurringTaskHandler,
	webhookHandler *webhookDelivery.WebhookHandler,
	activityHandler *activityDelivery.ActivityHandler,
	usageHandler *usageDelivery.UsageHandler,
) {
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Ingestion boundary
		webhook := api.Group("/webhook")
		{
			webhook.GET("/fathom", webhookHandler.Verify)
			webhook.POST("/fathom", webhookHandler.HandleFathom)
			webhook.POST("/test", webhookHandler.HandleTest)
		}

		// Task collection and single-task endpoints
		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.GetTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Recurring schedule templates
		recurring := api.Group("/recurring")
		{
			recurring.GET("", recurringHandler.GetRecurringTasks)
			recurring.POST("", recurringHandler.CreateRecurringTask)
			recurring.PUT("/:id", recurringHandler.UpdateRecurringTask)
			recurring.DELETE("/:id", recurringHandler.DeleteRecurringTask)
		}

		// Derived activity feed
		api.GET("/activity", activityHandler.GetActivity)

		// Usage snapshots
		api.GET("/usage", usageHandler.GetUsage)
		api.POST("/usage", usageHandler.PostUsage)
	}
}

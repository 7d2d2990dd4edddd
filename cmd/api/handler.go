package api

import (
	activityDelivery "missioncontrol-backend/internal/activity/delivery"
	activityUsecase "missioncontrol-backend/internal/activity/usecase"
	taskDelivery "missioncontrol-backend/internal/task/delivery"
	taskRepo "missioncontrol-backend/internal/task/repository"
	taskUsecasePkg "missioncontrol-backend/internal/task/usecase"
	usageDelivery "missioncontrol-backend/internal/usage/delivery"
	usageRepo "missioncontrol-backend/internal/usage/repository"
	usageUsecasePkg "missioncontrol-backend/internal/usage/usecase"
	webhookDelivery "missioncontrol-backend/internal/webhook/delivery"
	"missioncontrol-backend/pkg/extract"

	"github.com/gin-gonic/gin"
)

// Handler owns the HTTP surface of the service
type Handler struct {
	taskHandler      *taskDelivery.TaskHandler
	recurringHandler *taskDelivery.RecurringTaskHandler
	webhookHandler   *webhookDelivery.WebhookHandler
	activityHandler  *activityDelivery.ActivityHandler
	usageHandler     *usageDelivery.UsageHandler
}

// NewHandler wires usecases and delivery handlers from the repositories
func NewHandler(
	taskRepository taskRepo.TaskRepository,
	recurringRepository taskRepo.RecurringTaskRepository,
	snapshotRepository usageRepo.UsageSnapshotRepository,
) *Handler {
	extractor := extract.NewHeuristicExtractor()

	taskUc := taskUsecasePkg.NewTaskUsecase(taskRepository, extractor)
	recurringUc := taskUsecasePkg.NewRecurringTaskUsecase(recurringRepository)
	feedUc := activityUsecase.NewFeedUsecase(taskRepository, snapshotRepository)
	usageUc := usageUsecasePkg.NewUsageUsecase(snapshotRepository)

	return &Handler{
		taskHandler:      taskDelivery.NewTaskHandler(taskUc),
		recurringHandler: taskDelivery.NewRecurringTaskHandler(recurringUc),
		webhookHandler:   webhookDelivery.NewWebhookHandler(taskUc),
		activityHandler:  activityDelivery.NewActivityHandler(feedUc),
		usageHandler:     usageDelivery.NewUsageHandler(usageUc),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.taskHandler, h.recurringHandler, h.webhookHandler, h.activityHandler, h.usageHandler)

	return r.Run(addr)
}

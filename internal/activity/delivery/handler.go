package delivery

import (
	"net/http"

	"missioncontrol-backend/internal/activity/usecase"

	"github.com/gin-gonic/gin"
)

// ActivityHandler serves the derived activity feed
type ActivityHandler struct {
	feedUsecase usecase.FeedUsecase
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(feedUsecase usecase.FeedUsecase) *ActivityHandler {
	return &ActivityHandler{
		feedUsecase: feedUsecase,
	}
}

// GetActivity returns the reconstructed event stream. The builder absorbs
// store errors itself, so this endpoint always answers 200.
// GET /api/activity
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	c.JSON(http.StatusOK, h.feedUsecase.BuildFeed())
}

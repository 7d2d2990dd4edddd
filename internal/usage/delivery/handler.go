package delivery

import (
	"log"
	"net/http"

	"missioncontrol-backend/internal/usage/usecase"

	"github.com/gin-gonic/gin"
)

// UsageHandler serves usage snapshot reads and writes
type UsageHandler struct {
	usageUsecase usecase.UsageUsecase
}

// NewUsageHandler creates a new UsageHandler
func NewUsageHandler(usageUsecase usecase.UsageUsecase) *UsageHandler {
	return &UsageHandler{
		usageUsecase: usageUsecase,
	}
}

// GetUsage returns the latest snapshot plus the trend series
// GET /api/usage
func (h *UsageHandler) GetUsage(c *gin.Context) {
	report, err := h.usageUsecase.GetUsageReport()
	if err != nil {
		log.Printf("[Usage] Error building report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch usage"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// PostUsage appends a snapshot; the external weekly report job writes here
// POST /api/usage
func (h *UsageHandler) PostUsage(c *gin.Context) {
	var req usecase.SnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid snapshot payload"})
		return
	}

	snapshot, err := h.usageUsecase.RecordSnapshot(req)
	if err != nil {
		log.Printf("[Usage] Error writing snapshot: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write snapshot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": snapshot.ID})
}

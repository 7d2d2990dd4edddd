package delivery

import (
	"log"
	"net/http"
	"time"

	"missioncontrol-backend/internal/task/domain"
	"missioncontrol-backend/internal/task/usecase"

	"github.com/gin-gonic/gin"
)

// transcriptPreviewChars bounds the transcript echo in webhook responses
const transcriptPreviewChars = 500

// WebhookHandler handles the Fathom call ingestion boundary
type WebhookHandler struct {
	taskUsecase usecase.TaskUsecase
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(taskUsecase usecase.TaskUsecase) *WebhookHandler {
	return &WebhookHandler{
		taskUsecase: taskUsecase,
	}
}

// HandleFathom receives Fathom call data forwarded by Zapier, runs
// extraction, and persists the drafts. Draft persistence is best-effort:
// individual failures are reported in the response, never as a batch error.
// POST /api/webhook/fathom
func (h *WebhookHandler) HandleFathom(c *gin.Context) {
	var payload usecase.CallPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transcript is required"})
		return
	}

	log.Printf("[Webhook] Fathom call received: title=%q participants=%d",
		payload.Title, len(payload.Participants))

	result, err := h.taskUsecase.IngestCall(payload)
	if err != nil {
		log.Printf("[Webhook] Error processing call: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to process webhook",
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	saved := result.Saved
	if saved == nil {
		saved = []*domain.Task{}
	}

	response := gin.H{
		"success": true,
		"message": "Processed call: " + result.CallTitle,
		"call": gin.H{
			"title":        result.CallTitle,
			"date":         result.CallDate,
			"participants": result.Participants,
			"duration":     payload.Duration,
			"recordingUrl": payload.RecordingURL,
			"transcript":   previewTranscript(payload.Transcript),
		},
		"tasks":          saved,
		"tasksCreated":   len(saved),
		"tasksExtracted": result.Extracted,
		"timestamp":      time.Now().Format(time.RFC3339),
	}
	if len(result.Errors) > 0 {
		response["errors"] = result.Errors
	}

	log.Printf("[Webhook] Processed call %q: extracted=%d created=%d failed=%d",
		result.CallTitle, result.Extracted, len(saved), len(result.Errors))

	c.JSON(http.StatusOK, response)
}

// Verify answers webhook configuration checks
// GET /api/webhook/fathom
func (h *WebhookHandler) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Fathom webhook endpoint is active",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// HandleTest pushes a canned Fathom payload through the ingestion path so
// the pipeline can be exercised without a live Zapier hook
// POST /api/webhook/test
func (h *WebhookHandler) HandleTest(c *gin.Context) {
	mock := usecase.CallPayload{
		Title: "Budget Dog Weekly Check-in",
		Transcript: "Hey everyone, thanks for joining the Budget Dog weekly check-in. " +
			"We need to follow up on the Q1 quarterly review that we discussed last week. " +
			"Sarah, can you schedule that meeting with the product team for next Friday? " +
			"Also, we should update the client onboarding documentation. " +
			"John mentioned we need to create new training materials for the GoHighLevel integration, " +
			"this is pretty urgent since we're onboarding 3 new sales reps next week. " +
			"Finally, we should implement that lead scoring system we've been talking about.",
		CreatedAt:    time.Now().Format(time.RFC3339),
		Participants: []interface{}{"Dylan Rich", "Sarah Johnson", "Mike Chen"},
		Duration:     1847,
		RecordingURL: "https://app.fathom.video/calls/abc123",
	}

	result, err := h.taskUsecase.IngestCall(mock)
	if err != nil {
		log.Printf("[Webhook] Test ingest failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send test webhook"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Test webhook processed",
		"callTitle":      result.CallTitle,
		"tasksExtracted": result.Extracted,
		"tasksCreated":   len(result.Saved),
	})
}

func previewTranscript(transcript string) string {
	runes := []rune(transcript)
	if len(runes) > transcriptPreviewChars {
		runes = runes[:transcriptPreviewChars]
	}
	return string(runes) + "..."
}

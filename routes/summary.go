package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KRAadithiya/Meeting-Summarizer/internal/config"
	"github.com/KRAadithiya/Meeting-Summarizer/internal/database"
	"github.com/KRAadithiya/Meeting-Summarizer/internal/logger"
	"github.com/KRAadithiya/Meeting-Summarizer/models"
	"github.com/KRAadithiya/Meeting-Summarizer/services"
	"github.com/KRAadithiya/Meeting-Summarizer/utils"
)

// SummaryDeps bundles what the summarization routes need.
type SummaryDeps struct {
	Cfg      *config.Config
	Orc      *services.Orchestrator
	Meetings *database.MeetingRepository
	Cache    *services.ResultCache
}

// SetupSummaryRoutes registers the transcript-processing endpoints.
func SetupSummaryRoutes(router *gin.Engine, deps SummaryDeps) {
	router.POST("/process-transcript", processTranscript(deps))
	router.GET("/get-process/:process_id", getProcess(deps))
	router.GET("/get-summary/:meeting_id", getSummary(deps))
}

type processTranscriptRequest struct {
	Text         string `json:"text"`
	Model        string `json:"model"`
	ModelName    string `json:"model_name"`
	MeetingID    string `json:"meeting_id"`
	ChunkSize    *int   `json:"chunk_size"`
	Overlap      *int   `json:"overlap"`
	CustomPrompt string `json:"custom_prompt"`
}

func processTranscript(deps SummaryDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req processTranscriptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "invalid JSON body: "+err.Error())
			return
		}

		chunkSize := deps.Cfg.DefaultChunkSize
		if req.ChunkSize != nil {
			chunkSize = *req.ChunkSize
		}
		overlap := deps.Cfg.DefaultOverlap
		if req.Overlap != nil {
			overlap = *req.Overlap
		}

		jobID, err := deps.Orc.Submit(c.Request.Context(), services.SubmitRequest{
			MeetingID: req.MeetingID,
			Text:      req.Text,
			Selector: models.ModelSelector{
				Provider: req.Model,
				Model:    req.ModelName,
			},
			ChunkSize:    chunkSize,
			Overlap:      overlap,
			CustomPrompt: req.CustomPrompt,
		})
		if err != nil {
			utils.RespondWithDomainError(c, err)
			return
		}

		// Record the submission and drop any stale cached result. Both are
		// best-effort relative to the already-accepted job.
		ctx := c.Request.Context()
		if err := deps.Meetings.EnsureMeeting(ctx, req.MeetingID, ""); err != nil {
			logger.Warn("failed to ensure meeting", "meeting_id", req.MeetingID, "error", err)
		}
		if err := deps.Meetings.SaveSubmission(ctx, models.Submission{
			MeetingID: req.MeetingID,
			Text:      req.Text,
			Provider:  req.Model,
			Model:     req.ModelName,
			ChunkSize: chunkSize,
			Overlap:   overlap,
		}); err != nil {
			logger.Warn("failed to save submission", "meeting_id", req.MeetingID, "error", err)
		}
		deps.Cache.Invalidate(ctx, req.MeetingID)

		c.JSON(http.StatusAccepted, gin.H{
			"message":    "Processing started",
			"process_id": jobID,
		})
	}
}

func getProcess(deps SummaryDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, err := deps.Orc.GetJob(c.Request.Context(), c.Param("process_id"))
		if err != nil {
			utils.RespondWithDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, job)
	}
}

func getSummary(deps SummaryDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		meetingID := c.Param("meeting_id")

		if result, ok := deps.Cache.Get(ctx, meetingID); ok {
			c.JSON(http.StatusOK, gin.H{
				"status":     models.StatusCompleted,
				"meeting_id": meetingID,
				"data":       result,
			})
			return
		}

		job, err := deps.Orc.GetJobByMeeting(ctx, meetingID)
		if err != nil {
			utils.RespondWithDomainError(c, err)
			return
		}

		resp := gin.H{
			"status":     job.Status,
			"meeting_id": meetingID,
			"data":       job.Result,
		}
		if job.Error != "" {
			resp["error"] = job.Error
		}
		if job.Metadata != "" {
			resp["warning"] = job.Metadata
		}

		if job.Status == models.StatusCompleted {
			deps.Cache.Set(ctx, meetingID, job.Result)
		}
		c.JSON(http.StatusOK, resp)
	}
}

package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KRAadithiya/Meeting-Summarizer/internal/database"
	"github.com/KRAadithiya/Meeting-Summarizer/models"
	"github.com/KRAadithiya/Meeting-Summarizer/services"
	"github.com/KRAadithiya/Meeting-Summarizer/utils"
)

// MeetingDeps bundles what the meeting CRUD routes need.
type MeetingDeps struct {
	Meetings *database.MeetingRepository
	Cache    *services.ResultCache
}

// SetupMeetingRoutes registers the meeting management endpoints.
func SetupMeetingRoutes(router *gin.Engine, deps MeetingDeps) {
	router.GET("/get-meetings", getMeetings(deps))
	router.GET("/get-meeting/:meeting_id", getMeeting(deps))
	router.POST("/save-transcript", saveTranscript(deps))
	router.POST("/save-meeting-title", saveMeetingTitle(deps))
	router.POST("/delete-meeting", deleteMeeting(deps))
}

func getMeetings(deps MeetingDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		meetings, err := deps.Meetings.ListMeetings(c.Request.Context())
		if err != nil {
			utils.RespondWithInternalError(c, "failed to list meetings")
			return
		}
		c.JSON(http.StatusOK, meetings)
	}
}

func getMeeting(deps MeetingDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		meeting, transcripts, err := deps.Meetings.GetMeeting(c.Request.Context(), c.Param("meeting_id"))
		if err != nil {
			utils.RespondWithDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":          meeting.ID,
			"title":       meeting.Title,
			"created_at":  meeting.CreatedAt,
			"updated_at":  meeting.UpdatedAt,
			"transcripts": transcripts,
		})
	}
}

type saveTranscriptRequest struct {
	MeetingTitle string `json:"meeting_title" binding:"required"`
	Transcripts  []struct {
		Text      string `json:"text" binding:"required"`
		Timestamp string `json:"timestamp"`
	} `json:"transcripts" binding:"required"`
}

func saveTranscript(deps MeetingDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req saveTranscriptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "invalid JSON body: "+err.Error())
			return
		}

		ctx := c.Request.Context()
		meetingID := uuid.NewString()
		if err := deps.Meetings.EnsureMeeting(ctx, meetingID, req.MeetingTitle); err != nil {
			utils.RespondWithInternalError(c, "failed to create meeting")
			return
		}
		for _, t := range req.Transcripts {
			ts := t.Timestamp
			if ts == "" {
				ts = time.Now().UTC().Format(time.RFC3339)
			}
			if err := deps.Meetings.AddTranscript(ctx, models.Transcript{
				ID:        uuid.NewString(),
				MeetingID: meetingID,
				Text:      t.Text,
				Timestamp: ts,
			}); err != nil {
				utils.RespondWithInternalError(c, "failed to save transcript")
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":    "Transcript saved successfully",
			"meeting_id": meetingID,
		})
	}
}

type saveMeetingTitleRequest struct {
	MeetingID string `json:"meeting_id" binding:"required"`
	Title     string `json:"title" binding:"required"`
}

func saveMeetingTitle(deps MeetingDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req saveMeetingTitleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "invalid JSON body: "+err.Error())
			return
		}
		if err := deps.Meetings.UpdateTitle(c.Request.Context(), req.MeetingID, req.Title); err != nil {
			utils.RespondWithDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Meeting title saved successfully"})
	}
}

type deleteMeetingRequest struct {
	MeetingID string `json:"meeting_id" binding:"required"`
}

func deleteMeeting(deps MeetingDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req deleteMeetingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "invalid JSON body: "+err.Error())
			return
		}
		ctx := c.Request.Context()
		if err := deps.Meetings.DeleteMeeting(ctx, req.MeetingID); err != nil {
			utils.RespondWithDomainError(c, err)
			return
		}
		deps.Cache.Invalidate(ctx, req.MeetingID)
		c.JSON(http.StatusOK, gin.H{"message": "Meeting deleted successfully"})
	}
}

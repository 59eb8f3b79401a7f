package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prevenio/prevenio-backend/internal/repos"
	"github.com/prevenio/prevenio-backend/internal/services"
)

type ActivityHandler struct {
	activityService services.ActivityService
}

func NewActivityHandler(activityService services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (ah *ActivityHandler) CreateActivity(c *gin.Context) {
	var input services.CreateActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	activity, err := ah.activityService.CreateActivity(c.Request.Context(), input)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondCreated(c, activity)
}

func (ah *ActivityHandler) GetActivity(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}
	activity, err := ah.activityService.GetActivity(c.Request.Context(), activityID)
	if err != nil {
		RespondError(c, http.StatusNotFound, err)
		return
	}
	RespondOK(c, activity)
}

func (ah *ActivityHandler) ListActivities(c *gin.Context) {
	var filter repos.ActivityFilter
	if raw := c.Query("assigned_to_id"); raw != "" {
		assigneeID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assigned_to_id"})
			return
		}
		filter.AssigneeID = &assigneeID
	}
	if raw := c.Query("scheduled_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scheduled_from"})
			return
		}
		filter.ScheduledFrom = &from
	}
	if raw := c.Query("scheduled_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scheduled_to"})
			return
		}
		filter.ScheduledTo = &to
	}
	activities, err := ah.activityService.ListActivities(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondOK(c, activities)
}

func (ah *ActivityHandler) UpdateActivity(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}
	var patch services.UpdateActivityPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	activity, err := ah.activityService.UpdateActivity(c.Request.Context(), activityID, patch)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondOK(c, activity)
}

func (ah *ActivityHandler) DeleteActivity(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}
	if err := ah.activityService.DeleteActivity(c.Request.Context(), activityID); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondOK(c, gin.H{"message": "activity deleted"})
}

func (ah *ActivityHandler) ListEvents(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}
	events, err := ah.activityService.ListEvents(c.Request.Context(), activityID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondOK(c, events)
}

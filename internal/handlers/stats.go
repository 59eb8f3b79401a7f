package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prevenio/prevenio-backend/internal/requestdata"
	"github.com/prevenio/prevenio-backend/internal/services"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// resolveUserID reads the target user from the user_id query parameter and
// falls back to the authenticated caller when it is absent.
func resolveUserID(c *gin.Context) (uuid.UUID, bool) {
	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return uuid.Nil, false
		}
		return userID, true
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no authenticated user"})
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func (sh *StatsHandler) GetStatusStats(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	counts, err := sh.statsService.GetStatusStats(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondOK(c, counts)
}

func (sh *StatsHandler) GetDetailedStats(c *gin.Context) {
	userID, ok := resolveUserID(c)
	if !ok {
		return
	}
	result, err := sh.statsService.GetDetailedStats(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	RespondOK(c, result)
}

func (sh *StatsHandler) GetSupervisorRollup(c *gin.Context) {
	result, err := sh.statsService.GetSupervisorRollup(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusForbidden, err)
		return
	}
	RespondOK(c, result)
}

func (sh *StatsHandler) GroupActivities(c *gin.Context) {
	grouped, err := sh.statsService.GroupActivities(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusForbidden, err)
		return
	}
	RespondOK(c, grouped)
}

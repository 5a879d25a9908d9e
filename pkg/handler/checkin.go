package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/innergy-app/innergy-core/pkg/common"
	"github.com/innergy-app/innergy-core/pkg/metrics"
	"github.com/innergy-app/innergy-core/pkg/streak"
)

// checkinResponse is the answer to a successful activity log.
type checkinResponse struct {
	Category      string      `json:"category"`
	Record        interface{} `json:"record"`
	Milestone     bool        `json:"milestone"`
	NextMilestone int         `json:"nextMilestone"`
}

// LogActivity records today's check-in for a category.
func (h *Handler) LogActivity(c *gin.Context) {
	scope := common.ScopeFromContext(c.Request.Context(), "LogActivity")
	defer scope.Finish()

	category := c.Param("category")
	scope.TraceTag("category", category)

	record, err := h.engine.LogActivity(scope.Ctx, category)
	if err != nil {
		if errors.Is(err, streak.ErrUnknownCategory) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		scope.TraceError(err)
		scope.Log.Errorf("failed to log activity: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log activity"})
		return
	}

	metrics.ActivityLogsTotal.WithLabelValues(category).Inc()

	milestone := streak.IsMilestone(record.CurrentStreak)
	if milestone {
		metrics.MilestonesTotal.WithLabelValues(category).Inc()
		scope.TraceEvent("milestone reached: " + strconv.Itoa(record.CurrentStreak))
	}

	c.JSON(http.StatusOK, checkinResponse{
		Category:      category,
		Record:        record,
		Milestone:     milestone,
		NextMilestone: streak.NextMilestone(record.CurrentStreak),
	})
}

// GetStreak returns the record for one category, zero-valued when never
// logged.
func (h *Handler) GetStreak(c *gin.Context) {
	scope := common.ScopeFromContext(c.Request.Context(), "GetStreak")
	defer scope.Finish()

	record, err := h.engine.GetStreak(scope.Ctx, c.Param("category"))
	if err != nil {
		if errors.Is(err, streak.ErrUnknownCategory) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		scope.TraceError(err)
		scope.Log.Errorf("failed to get streak: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get streak"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// AllStreaks returns the full persisted mapping; never-logged categories are
// absent.
func (h *Handler) AllStreaks(c *gin.Context) {
	scope := common.ScopeFromContext(c.Request.Context(), "AllStreaks")
	defer scope.Finish()

	streaks, err := h.engine.AllStreaks(scope.Ctx)
	if err != nil {
		scope.TraceError(err)
		scope.Log.Errorf("failed to list streaks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list streaks"})
		return
	}

	c.JSON(http.StatusOK, streaks)
}

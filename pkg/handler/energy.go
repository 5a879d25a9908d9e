package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/innergy-app/innergy-core/pkg/calendar"
	"github.com/innergy-app/innergy-core/pkg/common"
	"github.com/innergy-app/innergy-core/pkg/metrics"
)

type energyRequest struct {
	// Date accepts the flexible date formats; empty means today.
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// RecordEnergy stores a daily energy score.
func (h *Handler) RecordEnergy(c *gin.Context) {
	scope := common.ScopeFromContext(c.Request.Context(), "RecordEnergy")
	defer scope.Finish()

	var req energyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Score < 0 || req.Score > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "score must be between 0 and 100"})
		return
	}

	day := calendar.DayKey(h.clock.Now())
	if req.Date != "" {
		parsed, err := calendar.ParseFlexibleDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unparseable date"})
			return
		}
		day = calendar.DayKey(parsed)
	}

	if err := h.energy.Record(scope.Ctx, day, req.Score); err != nil {
		scope.TraceError(err)
		scope.Log.Errorf("failed to record energy score: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record energy score"})
		return
	}

	metrics.EnergyScoresTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"date": day, "score": req.Score})
}

// EnergyTrend classifies the recent energy score history.
func (h *Handler) EnergyTrend(c *gin.Context) {
	scope := common.ScopeFromContext(c.Request.Context(), "EnergyTrend")
	defer scope.Finish()

	report, err := h.energy.Trend(scope.Ctx)
	if err != nil {
		scope.TraceError(err)
		scope.Log.Errorf("failed to classify trend: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to classify trend"})
		return
	}

	c.JSON(http.StatusOK, report)
}

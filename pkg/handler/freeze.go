package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/innergy-app/innergy-core/pkg/common"
	"github.com/innergy-app/innergy-core/pkg/metrics"
)

type freezeRequest struct {
	Reason string `json:"reason"`
}

// CanFreeze answers whether a freeze is currently allowed. Note: crossing a
// month boundary makes this query persist the quota reset.
func (h *Handler) CanFreeze(c *gin.Context) {
	scope := common.ScopeFromContext(c.Request.Context(), "CanFreeze")
	defer scope.Finish()

	check, err := h.freezes.CanFreeze(scope.Ctx)
	if err != nil {
		scope.TraceError(err)
		scope.Log.Errorf("failed to check freeze: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check freeze"})
		return
	}

	c.JSON(http.StatusOK, check)
}

// Freeze consumes today's freeze. Denials are 200s with success=false; the
// quota running out is an expected outcome, not a failure.
func (h *Handler) Freeze(c *gin.Context) {
	scope := common.ScopeFromContext(c.Request.Context(), "Freeze")
	defer scope.Finish()

	var req freezeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	result, err := h.freezes.Freeze(scope.Ctx, req.Reason)
	if err != nil {
		metrics.FreezesTotal.WithLabelValues("error").Inc()
		scope.TraceError(err)
		scope.Log.Errorf("failed to freeze: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to freeze"})
		return
	}

	if result.Success {
		metrics.FreezesTotal.WithLabelValues("granted").Inc()
	} else {
		metrics.FreezesTotal.WithLabelValues("denied").Inc()
	}

	c.JSON(http.StatusOK, result)
}

// FreezeStats summarizes freeze usage.
func (h *Handler) FreezeStats(c *gin.Context) {
	scope := common.ScopeFromContext(c.Request.Context(), "FreezeStats")
	defer scope.Finish()

	stats, err := h.freezes.Stats(scope.Ctx)
	if err != nil {
		scope.TraceError(err)
		scope.Log.Errorf("failed to get freeze stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get freeze stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

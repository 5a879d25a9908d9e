package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/innergy-app/innergy-core/pkg/calendar"
	"github.com/innergy-app/innergy-core/pkg/common"
	"github.com/innergy-app/innergy-core/pkg/numerology"
)

// Numerology computes the name-numerology profile. Derived on demand, never
// persisted.
func (h *Handler) Numerology(c *gin.Context) {
	scope := common.ScopeFromContext(c.Request.Context(), "Numerology")
	defer scope.Finish()

	name := c.Query("name")
	if strings.TrimSpace(name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
		return
	}

	c.JSON(http.StatusOK, numerology.Analyze(name))
}

// Today returns the canonical day key and both era years, with a display
// string for the requested locale.
func (h *Handler) Today(c *gin.Context) {
	scope := common.ScopeFromContext(c.Request.Context(), "Today")
	defer scope.Finish()

	locale := c.DefaultQuery("locale", "en")
	now := h.clock.Now()
	ce, be := calendar.CurrentYears(now)

	c.JSON(http.StatusOK, gin.H{
		"dayKey":       calendar.DayKey(now),
		"commonYear":   ce,
		"buddhistYear": be,
		"display":      calendar.FormatDualEra(now, locale),
	})
}

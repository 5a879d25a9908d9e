// Package handler binds the tracking core to the HTTP API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/innergy-app/innergy-core/pkg/calendar"
	"github.com/innergy-app/innergy-core/pkg/service"
	"github.com/innergy-app/innergy-core/pkg/streak"
	"github.com/innergy-app/innergy-core/pkg/trend"
)

// Handler carries the wired subsystems behind the HTTP API.
type Handler struct {
	engine  *streak.Engine
	freezes *streak.FreezeManager
	energy  *trend.Aggregator
	clock   calendar.Clock
	health  *service.HealthChecker
}

// New creates the API handler.
func New(engine *streak.Engine, freezes *streak.FreezeManager, energy *trend.Aggregator, clock calendar.Clock, health *service.HealthChecker) *Handler {
	return &Handler{
		engine:  engine,
		freezes: freezes,
		energy:  energy,
		clock:   clock,
		health:  health,
	}
}

// Register wires all routes onto the gin engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/healthz", h.Health)

	v1 := r.Group("/v1")
	v1.POST("/checkins/:category", h.LogActivity)
	v1.GET("/streaks", h.AllStreaks)
	v1.GET("/streaks/:category", h.GetStreak)
	v1.GET("/freezes/check", h.CanFreeze)
	v1.POST("/freezes", h.Freeze)
	v1.GET("/freezes/stats", h.FreezeStats)
	v1.GET("/profile/numerology", h.Numerology)
	v1.POST("/energy", h.RecordEnergy)
	v1.GET("/energy/trend", h.EnergyTrend)
	v1.GET("/calendar/today", h.Today)
}

// Health reports Redis reachability.
func (h *Handler) Health(c *gin.Context) {
	if err := h.health.Check(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

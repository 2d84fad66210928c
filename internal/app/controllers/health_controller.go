package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/trainerapi/internal/app/models/dto"
	"github.com/yigit/trainerapi/internal/middleware"
)

// PingFunc checks that the backing store is reachable
type PingFunc func(ctx context.Context) error

// HealthController reports service liveness
type HealthController struct {
	driver string
	ping   PingFunc
}

// NewHealthController creates a new HealthController. ping may be nil when
// the store has nothing to dial.
func NewHealthController(driver string, ping PingFunc) *HealthController {
	return &HealthController{driver: driver, ping: ping}
}

// Health checks the store
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Failure 500 {object} dto.ErrorResponse "Store unreachable"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	if c.ping != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.ping(pingCtx); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.HealthResponse{Status: "ok", Database: c.driver}))
}

// Ping answers without touching the store
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
}

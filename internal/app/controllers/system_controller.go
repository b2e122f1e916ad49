package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursefeedback/internal/app/models/dto"
)

// PingFunc checks that the backing store is reachable
type PingFunc func(ctx context.Context) error

// SystemController serves the banner and liveness endpoints
type SystemController struct {
	ping PingFunc
}

// NewSystemController creates a new SystemController. A nil ping reports the store as always up.
func NewSystemController(ping PingFunc) *SystemController {
	return &SystemController{ping: ping}
}

// Banner answers GET /
func (c *SystemController) Banner(ctx *gin.Context) {
	ctx.String(http.StatusOK, "Course Enrollment & Feedback API is running!")
}

// Test answers GET /test
func (c *SystemController) Test(ctx *gin.Context) {
	ctx.String(http.StatusOK, "Server is working!")
}

// Ping answers GET /ping
func (c *SystemController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
}

// Health reports whether the store answers within a short deadline
func (c *SystemController) Health(ctx *gin.Context) {
	if c.ping != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.ping(pingCtx); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Store unavailable"),
			))
			return
		}
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}, ""))
}

// NotFound answers unknown routes with the standard envelope
func (c *SystemController) NotFound(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found"),
	))
}
